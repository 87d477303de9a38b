// Package drafts keeps named markdown drafts outside the rendering core.
//
// Drafts are keyed by name. Each draft carries a stable uuid assigned on first
// save and an mdfp content fingerprint; saving identical text again leaves
// UpdatedAt untouched.
package drafts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// Draft is one stored text.
type Draft struct {
	ID          uuid.UUID
	Name        string
	Text        string
	Fingerprint string
	UpdatedAt   time.Time
}

// Store persists drafts.
type Store interface {
	// Save creates or replaces the draft called name.
	Save(ctx context.Context, name, text string) (Draft, error)

	// Load returns the draft called name, or an error matching ErrDraftNotFound.
	Load(ctx context.Context, name string) (Draft, error)

	// List returns every draft ordered by name.
	List(ctx context.Context) ([]Draft, error)

	// Delete removes the draft called name, or returns an error matching ErrDraftNotFound.
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

// Fingerprint returns the content fingerprint of text.
func Fingerprint(text string) string {
	return mdfp.CalculateFingerprintFromParts("", text)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// next computes the draft to store for text given the previous version, if any.
func next(prev *Draft, name, text string, now time.Time) Draft {
	fp := Fingerprint(text)
	if prev != nil {
		d := *prev
		if d.Fingerprint == fp {
			return d
		}
		d.Text = text
		d.Fingerprint = fp
		d.UpdatedAt = now
		return d
	}
	return Draft{
		ID:          uuid.New(),
		Name:        name,
		Text:        text,
		Fingerprint: fp,
		UpdatedAt:   now,
	}
}
