package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestListFiles(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/in/selection.txt", []byte("1\n"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/in/mutation.txt", []byte("1\n"), 0644))
	require.NoError(t, fsys.MkdirAll("/in/nested", 0o755))

	files, err := ListFiles(fsys, "/in")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join("/in", "mutation.txt"),
		filepath.Join("/in", "selection.txt"),
	}, files)

	_, err = ListFiles(fsys, "/missing")
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/src/run.sh", []byte("#!/bin/sh\necho hi\n"), 0755))
	require.NoError(t, afero.WriteFile(fsys, "/dst/run.sh", []byte("old old old old old"), 0644))

	// --- Act ---
	dst, err := CopyFile(fsys, "/src/run.sh", "/dst")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/dst", "run.sh"), dst)
	data, err := afero.ReadFile(fsys, dst)
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\necho hi\n", string(data))
	info, err := fsys.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())
}

func TestCopyFile_SourceAlreadyInPlace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/sims/sim_a/run.sh", []byte("echo hi\n"), 0755))

	// --- Act ---
	dst, err := CopyFile(fsys, "/sims/sim_a/../sim_a/run.sh", "/sims/sim_a")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/sims/sim_a", "run.sh"), dst)
	data, err := afero.ReadFile(fsys, dst)
	require.NoError(t, err)
	require.Equal(t, "echo hi\n", string(data), "copying a file onto itself must not truncate it")
}

func TestSameFile_HardLinkOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fsys := afero.NewOsFs()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, afero.WriteFile(fsys, a, []byte("x"), 0644))
	require.NoError(t, os.Link(a, b))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "c.txt"), []byte("x"), 0644))

	require.True(t, SameFile(fsys, a, b))
	require.False(t, SameFile(fsys, a, filepath.Join(dir, "c.txt")))
	require.False(t, SameFile(fsys, a, filepath.Join(dir, "missing.txt")))
}

func TestIsRegularFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.txt", nil, 0644))
	require.NoError(t, fsys.MkdirAll("/dir", 0o755))

	require.True(t, IsRegularFile(fsys, "/a.txt"))
	require.False(t, IsRegularFile(fsys, "/dir"))
	require.False(t, IsRegularFile(fsys, "/missing"))
}

func TestFindDirs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{
		"/t/sim_a_r1",
		"/t/sim_b_r1",
		"/t/other",
		"/t/batch_1/sim_c_r1",
		"/t/batch_2/sim_d_r1",
		"/t/batch_2/junk",
	} {
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
	}
	require.NoError(t, afero.WriteFile(fsys, "/t/sim_file.txt", nil, 0644))

	testCases := []struct {
		name     string
		depth    int
		patterns []string
		want     []string
	}{
		{
			name:     "top level only",
			depth:    1,
			patterns: []string{PrefixPattern("sim")},
			want:     []string{"/t/sim_a_r1", "/t/sim_b_r1"},
		},
		{
			name:     "one level into batches",
			depth:    2,
			patterns: []string{PrefixPattern("sim"), PrefixPattern("batch_") + "/" + PrefixPattern("sim")},
			want:     []string{"/t/batch_1/sim_c_r1", "/t/batch_2/sim_d_r1", "/t/sim_a_r1", "/t/sim_b_r1"},
		},
		{
			name:     "batches",
			depth:    1,
			patterns: []string{PrefixPattern("batch_")},
			want:     []string{"/t/batch_1", "/t/batch_2"},
		},
		{
			name:     "no match",
			depth:    1,
			patterns: []string{PrefixPattern("run")},
			want:     nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := FindDirs(fsys, "/t", tc.depth, tc.patterns...)
			require.NoError(t, err)

			var want []string
			for _, w := range tc.want {
				want = append(want, filepath.FromSlash(w))
			}
			require.Equal(t, want, got)
		})
	}
}

func TestQuoteMeta(t *testing.T) {
	t.Parallel()

	require.Equal(t, `sim\[1\]\*`, QuoteMeta("sim[1]*"))
	require.Equal(t, `run\{a,b\}\?*`, PrefixPattern("run{a,b}?"))

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/t/sim[1]_x", 0o755))
	require.NoError(t, fsys.MkdirAll("/t/sim1_x", 0o755))

	got, err := FindDirs(fsys, "/t", 1, PrefixPattern("sim[1]"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("/t", "sim[1]_x")}, got)
}
