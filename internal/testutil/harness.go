package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/simarray/internal/app"
	"github.com/specialistvlad/simarray/internal/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Stdout    string
	LogOutput string
	Err       error
	Exited    bool

	// Fs is rooted at the test's temporary directory; paths passed on the
	// command line resolve against it.
	Fs   afero.Fs
	Root string
}

// NewTree creates a temporary directory holding files, keyed by path
// relative to the root, and returns a filesystem rooted there.
func NewTree(t *testing.T, files map[string]string) (afero.Fs, string) {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), root
}

// RunCLI provides a standardized harness for running simarray end to end
// using a default background context.
func RunCLI(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	fsys, _ := NewTree(t, files)
	return RunCLIOn(context.Background(), t, fsys, args...)
}

// RunCLIOn runs simarray against an existing tree, so a test can run it
// several times over the same files.
func RunCLIOn(ctx context.Context, t *testing.T, fsys afero.Fs, args ...string) *HarnessResult {
	t.Helper()

	stdout := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Fs: fsys}
	if base, ok := fsys.(*afero.BasePathFs); ok {
		result.Root, _ = base.RealPath("")
	}

	cfg, shouldExit, err := cli.Parse(args, stdout, fsys)
	switch {
	case err != nil:
		result.Err = err
	case shouldExit:
		result.Exited = true
	default:
		result.Err = app.NewApp(stdout, logBuffer, cfg, fsys).Run(ctx)
	}

	if os.Getenv("SIMARRAY_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Stdout = stdout.String()
	result.LogOutput = logBuffer.String()
	return result
}
