package integration_tests

import (
	"testing"

	"github.com/specialistvlad/simarray/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestGeneration_TemplateExpansion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		template  string
		extraArgs []string
		paramFile string
		want      string
	}{
		{
			name:      "declarations are filled in and other lines kept",
			template:  "# model run\nselection 0\nrecombination 0.99\nmutation 0\n",
			paramFile: "template.txt",
			want:      "# model run\nselection 0.6\nrecombination 0.99\nmutation 0.2\n",
		},
		{
			name:      "missing parameters are appended in parameter order",
			template:  "recombination 0.99\n",
			paramFile: "template.txt",
			want:      "recombination 0.99\nselection 0.6\nmutation 0.2\n",
		},
		{
			name:      "leading whitespace still declares a parameter",
			template:  "  selection 0\nmutation 0\n",
			paramFile: "template.txt",
			want:      "selection 0.6\nmutation 0.2\n",
		},
		{
			name:      "output file name override",
			template:  "selection 0\nmutation 0\n",
			extraArgs: []string{"--output-param-file", "input.par"},
			paramFile: "input.par",
			want:      "selection 0.6\nmutation 0.2\n",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			files := map[string]string{
				"selection.txt": "0.5\n0.6\n",
				"mutation.txt":  "0.1\n0.2\n",
				"template.txt":  tc.template,
			}
			args := append([]string{"--target", "sims", "--template", "template.txt"}, tc.extraArgs...)
			args = append(args, "selection.txt", "mutation.txt")

			// --- Act ---
			result := testutil.RunCLI(t, files, args...)

			// --- Assert ---
			require.NoError(t, result.Err)
			got := testutil.ReadFile(t, result.Fs, "sims/sim_selection_0.6_mutation_0.2_r1/"+tc.paramFile)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestGeneration_ParamSeparator uses "=" between names and values.
func TestGeneration_ParamSeparator(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"rate.txt":     "1=2\n",
		"template.txt": "rate=0\nseed=42\n",
	}

	result := testutil.RunCLI(t, files, "--target", "sims", "--template", "template.txt", "--param-separator", "=", "rate.txt")

	require.NoError(t, result.Err)
	require.Equal(t, "rate=1=2\nseed=42\n", testutil.ReadFile(t, result.Fs, "sims/sim_rate_1_2_r1/template.txt"))
}
