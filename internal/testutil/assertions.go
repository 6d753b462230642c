package testutil

import (
	"sort"
	"testing"

	"github.com/specialistvlad/simarray/internal/archive"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ReadFile returns the content of a file in the harness tree.
func ReadFile(t *testing.T, fsys afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, name)
	require.NoError(t, err, "failed to read %s", name)
	return string(data)
}

// Dirs returns the sorted names of the directories directly inside dir.
func Dirs(t *testing.T, fsys afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fsys, dir)
	require.NoError(t, err, "failed to list %s", dir)

	names := []string{}
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ArchiveMembers returns the member names of a .tar.gz, in archive order.
func ArchiveMembers(t *testing.T, fsys afero.Fs, name string) []string {
	t.Helper()
	entries, err := archive.List(fsys, name)
	require.NoError(t, err, "failed to list archive %s", name)

	members := make([]string, len(entries))
	for i, e := range entries {
		members[i] = e.Name
	}
	return members
}

// AssertExists fails the test unless name exists in the tree.
func AssertExists(t *testing.T, fsys afero.Fs, name string) {
	t.Helper()
	ok, err := afero.Exists(fsys, name)
	require.NoError(t, err)
	require.True(t, ok, "expected %s to exist", name)
}

// AssertNotExists fails the test if name exists in the tree.
func AssertNotExists(t *testing.T, fsys afero.Fs, name string) {
	t.Helper()
	ok, err := afero.Exists(fsys, name)
	require.NoError(t, err)
	require.False(t, ok, "expected %s not to exist", name)
}
