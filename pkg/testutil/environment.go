package testutil

import (
	"path/filepath"
	"testing"
)

// TestEnvironment points the XDG directories pricecalc reads at empty
// temporary directories, so neither the user's config file nor their log
// file is touched.
type TestEnvironment struct {
	ConfigHome string
	StateHome  string
	// WorkDir is a scratch directory for models and rulesets.
	WorkDir string

	t *testing.T
}

// NewTestEnvironment creates the directories and sets the environment. The
// variables are restored when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		ConfigHome: t.TempDir(),
		StateHome:  t.TempDir(),
		WorkDir:    t.TempDir(),
		t:          t,
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("NO_COLOR", "1")

	return env
}

// ConfigPath is the user config file location inside the environment.
func (e *TestEnvironment) ConfigPath() string {
	return filepath.Join(e.ConfigHome, "pricecalc", "config.toml")
}

// WriteConfig writes the user config file.
func (e *TestEnvironment) WriteConfig(content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.ConfigHome, filepath.Join("pricecalc", "config.toml"), content)
}

// AddFile writes a file into WorkDir and returns its path.
func (e *TestEnvironment) AddFile(name, content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.WorkDir, name, content)
}

// Path joins name onto WorkDir without creating anything.
func (e *TestEnvironment) Path(name string) string {
	return filepath.Join(e.WorkDir, name)
}
