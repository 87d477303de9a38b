package export

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/markdown"
)

var updateGolden = flag.Bool("update-golden", false, "Update golden files")

func TestExport_Golden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".md")
		t.Run(name, func(t *testing.T) {
			// #nosec G304 -- test fixture from testdata
			src, err := os.ReadFile(input)
			require.NoError(t, err)
			got := Export(markdown.Parse(string(src)), document.DefaultRenderPolicy(true))

			goldenPath := filepath.Join("testdata", name+".golden.html")
			if *updateGolden {
				require.NoError(t, os.WriteFile(goldenPath, []byte(got+"\n"), 0o600))
				t.Logf("Updated golden file: %s", goldenPath)
				return
			}
			// #nosec G304 -- golden file from testdata
			want, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "failed to read golden file: %s", goldenPath)
			assert.Equal(t, strings.TrimSuffix(string(want), "\n"), got)
		})
	}
}
