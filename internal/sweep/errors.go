// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import "errors"

// Error kinds shared by every stage of a run. Concrete errors wrap one of
// these so callers can classify failures with errors.Is.
var (
	// ErrConfiguration reports missing or invalid user input: no input files,
	// an empty dispatch list, a bad option value.
	ErrConfiguration = errors.New("configuration error")

	// ErrConsistency reports inputs that disagree with each other: value files
	// of different lengths, a missing dispatch file, a parameter declared twice.
	ErrConsistency = errors.New("consistency error")
)
