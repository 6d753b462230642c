package sweep

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultNamer(replicates int) FolderNamer {
	return FolderNamer{
		Separator:       "_",
		ParamSeparator:  " ",
		SimPrefix:       "sim",
		ReplicatePrefix: "r",
		Replicates:      replicates,
	}
}

func selectionMutation() []ValueFile {
	return []ValueFile{
		{Name: "selection", Values: []string{"0.5", "0.6"}},
		{Name: "mutation", Values: []string{"0.1", "0.2"}},
	}
}

func folderNames(p *Plan) []string {
	names := make([]string, len(p.Folders))
	for i, f := range p.Folders {
		names[i] = f.Name
	}
	return names
}

func TestNewPlan_FolderNames(t *testing.T) {
	t.Parallel()

	// --- Act ---
	plan, err := NewPlan(selectionMutation(), defaultNamer(2), BatchAssigner{})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{
		"sim_selection_0.5_mutation_0.1_r1",
		"sim_selection_0.5_mutation_0.1_r2",
		"sim_selection_0.6_mutation_0.2_r1",
		"sim_selection_0.6_mutation_0.2_r2",
	}, folderNames(plan))
	require.Equal(t, 0, plan.Batches)

	v, ok := plan.Folders[2].Params.Get("mutation")
	require.True(t, ok)
	require.Equal(t, "0.2", v)
	require.Equal(t, 1, plan.Folders[3].Row)
	require.Equal(t, filepath.Join("out", "sim_selection_0.5_mutation_0.1_r1"), plan.Path("out", plan.Folders[0]))
}

func TestNewPlan_CountIsRowsTimesReplicates(t *testing.T) {
	t.Parallel()

	for _, rows := range []int{1, 3, 7} {
		rows := rows
		for _, reps := range []int{1, 2, 5} {
			reps := reps
			t.Run(fmt.Sprintf("%dx%d", rows, reps), func(t *testing.T) {
				t.Parallel()

				a := ValueFile{Name: "a"}
				b := ValueFile{Name: "b"}
				for i := 0; i < rows; i++ {
					a.Values = append(a.Values, fmt.Sprint(i))
					b.Values = append(b.Values, fmt.Sprint(i*10))
				}

				plan, err := NewPlan([]ValueFile{a, b}, defaultNamer(reps), BatchAssigner{})
				require.NoError(t, err)
				require.Len(t, plan.Folders, rows*reps)

				seen := make(map[string]bool)
				for _, f := range plan.Folders {
					assert.False(t, seen[f.Name], "duplicate folder %s", f.Name)
					seen[f.Name] = true
					assert.Contains(t, f.Name, "a_"+f.Params[0].Value)
					assert.Contains(t, f.Name, "b_"+f.Params[1].Value)
				}
			})
		}
	}
}

func TestFolderNamer_ReplacesParamSeparatorInValues(t *testing.T) {
	t.Parallel()

	namer := defaultNamer(1)
	set := ParameterSet{{Name: "scale", Value: "0 5"}, {Name: "seed", Value: "7"}}

	require.Equal(t, "sim_scale_0_5_seed_7", namer.Base(set))
	require.Equal(t, []string{"sim_scale_0_5_seed_7_r1"}, namer.Names(set))
}

func TestNewPlan_Batches(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// 2 rows x 4 replicates = 8 folders, batches of 3.
	batcher := BatchAssigner{By: 3, Prefix: "batch_"}

	// --- Act ---
	plan, err := NewPlan(selectionMutation(), defaultNamer(4), batcher)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, plan.Folders, 8)
	require.Equal(t, 3, plan.Batches)

	sizes := make(map[int]int)
	prev := 1
	for _, f := range plan.Folders {
		require.GreaterOrEqual(t, f.Batch, prev, "batch numbers must not decrease")
		prev = f.Batch
		sizes[f.Batch]++
	}
	require.Equal(t, map[int]int{1: 3, 2: 3, 3: 2}, sizes)
	require.Equal(t, []string{
		filepath.Join("t", "batch_1"),
		filepath.Join("t", "batch_2"),
		filepath.Join("t", "batch_3"),
	}, plan.BatchDirs("t"))
	require.Equal(t, filepath.Join("t", "batch_3", plan.Folders[7].Name), plan.Path("t", plan.Folders[7]))
}

func TestBatchAssigner(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		by, total, wantCount int
	}{
		{by: 0, total: 8, wantCount: 0},
		{by: 3, total: 8, wantCount: 3},
		{by: 4, total: 8, wantCount: 2},
		{by: 1, total: 5, wantCount: 5},
		{by: 10, total: 3, wantCount: 1},
		{by: 3, total: 0, wantCount: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("by=%d total=%d", tc.by, tc.total), func(t *testing.T) {
			t.Parallel()
			b := BatchAssigner{By: tc.by}
			require.Equal(t, tc.wantCount, b.Count(tc.total))
			if tc.total > 0 {
				require.Equal(t, tc.wantCount, b.Batch(tc.total-1))
			}
		})
	}
}

func TestNewPlan_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   []ValueFile
		namer   FolderNamer
		batcher BatchAssigner
		wantErr error
		wantMsg string
	}{
		{
			name:    "zero replicates",
			files:   selectionMutation(),
			namer:   defaultNamer(0),
			wantErr: ErrConfiguration,
			wantMsg: "replicates must be at least 1",
		},
		{
			name:    "negative batch size",
			files:   selectionMutation(),
			namer:   defaultNamer(1),
			batcher: BatchAssigner{By: -1},
			wantErr: ErrConfiguration,
			wantMsg: "batch size must not be negative",
		},
		{
			name: "duplicate parameter names",
			files: []ValueFile{
				{Name: "x", Path: "a/x.txt", Values: []string{"1"}},
				{Name: "x", Path: "b/x.txt", Values: []string{"2"}},
			},
			namer:   defaultNamer(1),
			wantErr: ErrConsistency,
			wantMsg: `parameter "x" is provided by both a/x.txt and b/x.txt`,
		},
		{
			name: "rows producing the same folder",
			files: []ValueFile{
				{Name: "x", Values: []string{"1", "2", "1"}},
			},
			namer:   defaultNamer(2),
			wantErr: ErrConsistency,
			wantMsg: `rows 1 and 3 both produce folder "sim_x_1_r1"`,
		},
		{
			name: "misaligned",
			files: []ValueFile{
				{Name: "x", Values: []string{"1", "2"}},
				{Name: "y", Values: []string{"1"}},
			},
			namer:   defaultNamer(1),
			wantErr: ErrConsistency,
			wantMsg: "files do not have the same number of lines",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewPlan(tc.files, tc.namer, tc.batcher)
			require.ErrorIs(t, err, tc.wantErr)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
