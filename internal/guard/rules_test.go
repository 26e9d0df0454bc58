package guard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 3, r.Burst)
	assert.Equal(t, 10*time.Second, r.BurstWindow)
	assert.Equal(t, 10, r.Sustained)
	assert.Equal(t, 60*time.Second, r.SustainedWindow)
	assert.Equal(t, 3, r.Escalation)
	assert.NotEmpty(t, r.Keywords)
	assert.NotEmpty(t, r.SpamPhrases)
}

func TestLoadRules_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
burst: 5
burst_window_seconds: 20
escalation: 2
keywords:
  - badword
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Burst)
	assert.Equal(t, 20*time.Second, r.BurstWindow)
	assert.Equal(t, 2, r.Escalation)
	assert.Equal(t, []string{"badword"}, r.Keywords)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10, r.Sustained)
	assert.NotEmpty(t, r.SpamPhrases)
}

func TestLoadRules_MissingFileReturnsDefaults(t *testing.T) {
	r, err := LoadRules("/nonexistent/rules.yaml")
	assert.Error(t, err)
	assert.Equal(t, DefaultRules().Burst, r.Burst)
}
