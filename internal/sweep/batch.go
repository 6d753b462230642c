package sweep

import "fmt"

// BatchAssigner groups sequential folders into fixed-size batches. A zero
// size disables batching.
type BatchAssigner struct {
	By     int
	Prefix string
}

// Validate rejects negative batch sizes.
func (b BatchAssigner) Validate() error {
	if b.By < 0 {
		return fmt.Errorf("%w: batch size must not be negative, got %d", ErrConfiguration, b.By)
	}
	return nil
}

// Enabled reports whether folders are grouped into batch directories.
func (b BatchAssigner) Enabled() bool {
	return b.By > 0
}

// Batch returns the 1-based batch of the folder at 0-based index i, or 0 when
// batching is disabled.
func (b BatchAssigner) Batch(i int) int {
	if !b.Enabled() {
		return 0
	}
	return i/b.By + 1
}

// Count returns the number of batches needed for total folders.
func (b BatchAssigner) Count(total int) int {
	if !b.Enabled() || total <= 0 {
		return 0
	}
	return (total + b.By - 1) / b.By
}

// Dir returns the directory name of batch n.
func (b BatchAssigner) Dir(n int) string {
	return fmt.Sprintf("%s%d", b.Prefix, n)
}
