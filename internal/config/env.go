package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}
