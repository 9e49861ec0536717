package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is read.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
// The log file is disabled unless args configure one.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if !containsArg(args, "--log-file") {
		args = append(args, "--no-log-file")
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func containsArg(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

// writeProject writes a project file into dir and returns its path.
func writeProject(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const shortProject = `
duration: 0.2
tracks:
  - id: v1
    name: Picture
    kind: video
clips:
  - id: c1
    kind: video
    track: v1
    start: 0
    duration: 0.2
`
