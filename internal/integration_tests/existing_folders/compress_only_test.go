package integration_tests

import (
	"testing"

	"github.com/specialistvlad/simarray/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestCompressOnly_EachBatchGetsItsArchive(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"sims/batch_1/file1.txt": "This is file1 in batch_1.",
		"sims/batch_2/file2.txt": "This is file2 in batch_2.",
		"sims/sim_loose/p.txt":   "a 1\n",
	}

	// --- Act ---
	result := testutil.RunCLI(t, files, "--compress-only", "--target", "sims")

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, []string{"batch_1/", "batch_1/file1.txt"}, testutil.ArchiveMembers(t, result.Fs, "sims/batch_1.tar.gz"))
	require.Equal(t, []string{"batch_2/", "batch_2/file2.txt"}, testutil.ArchiveMembers(t, result.Fs, "sims/batch_2.tar.gz"))
	testutil.AssertNotExists(t, result.Fs, "sims/all_simulations.tar.gz")
}

func TestCompressOnly_AllSimulationsInOneArchive(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"sims/sim_folder_1/file1.txt": "This is file1 in sim_folder_1.",
		"sims/sim_folder_2/file2.txt": "This is file2 in sim_folder_2.",
		"sims/batch_1/ignored.txt":    "not a simulation",
	}

	// --- Act ---
	result := testutil.RunCLI(t, files, "--compress-only", "--compress-all", "--tarball-name", "everything", "--target", "sims")

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, []string{
		"sim_folder_1/",
		"sim_folder_1/file1.txt",
		"sim_folder_2/",
		"sim_folder_2/file2.txt",
	}, testutil.ArchiveMembers(t, result.Fs, "sims/everything.tar.gz"))
}

func TestCompressOnly_NothingToCompressWarns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		args        []string
		wantWarning string
	}{
		{
			name:        "no batch folders",
			args:        []string{"--compress-only", "--target", "sims"},
			wantWarning: "No batch folders found.",
		},
		{
			name:        "no simulation folders",
			args:        []string{"--compress-only", "--compress-all", "--target", "sims"},
			wantWarning: "No simulation folders found.",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunCLI(t, map[string]string{"sims/other/x.txt": "x"}, tc.args...)

			require.NoError(t, result.Err)
			require.Contains(t, result.LogOutput, tc.wantWarning)
			require.Equal(t, []string{"other"}, testutil.Dirs(t, result.Fs, "sims"))
			testutil.AssertNotExists(t, result.Fs, "sims/all_simulations.tar.gz")
		})
	}
}

// TestDispatchThenCompress runs both existing-folder modes in one call.
func TestDispatchThenCompress(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"sims/batch_1/sim_1/p.txt": "a 1\n",
		"run.sh":                   "#!/bin/sh\n",
	}

	result := testutil.RunCLI(t, files,
		"--dispatch-only", "--dispatch-recursive", "--dispatch", "run.sh",
		"--compress-only", "--target", "sims")

	require.NoError(t, result.Err)
	require.Equal(t, []string{
		"batch_1/",
		"batch_1/sim_1/",
		"batch_1/sim_1/p.txt",
		"batch_1/sim_1/run.sh",
	}, testutil.ArchiveMembers(t, result.Fs, "sims/batch_1.tar.gz"))
}
