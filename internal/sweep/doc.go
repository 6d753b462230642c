// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sweep turns aligned parameter value files into the ordered list of
// simulation folders a run must create.
//
// # Core Concepts
//
//   - ValueFile: one input file. Its base name without extension names the
//     parameter and every trimmed line is one candidate value.
//
//   - ParameterSet: one row across all value files, kept in input order so that
//     folder names and generated parameter files are deterministic.
//
//   - Folder: a folder name paired with its ParameterSet, its position in the
//     run, and the batch it belongs to.
//
// Values are zipped, not multiplied: line i of every file forms row i. Rows are
// emitted in file-line order with replicates innermost, so a run with N lines
// and R replicates always yields N*R folders.
package sweep
