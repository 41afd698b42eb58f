package fzconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasPositiveMaxInputComplexity(t *testing.T) {
	require.Greater(t, Default().MaxInputComplexity, 0.0)
}

func TestValidateRejectsNonPositiveComplexity(t *testing.T) {
	cfg := Default()
	cfg.MaxInputComplexity = 0

	require.Error(t, cfg.Validate())
}

func TestLoadFileOverlaysHJSONWithComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuzzcheck.hujson")

	contents := `{
  // stop early once we see anything fail
  "stop_after_first_failure": true,
  "max_input_complexity": 2048.0,
}`

	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))

	require.True(t, cfg.StopAfterFirstFailure)
	require.Equal(t, 2048.0, cfg.MaxInputComplexity)
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(filepath.Join(t.TempDir(), "missing.hujson"), &cfg))
}
