// Package compute defines the uniform compute-algorithm contract shared
// by every algorithm in the Lattice library.
//
// An algorithm instance is a Batch binding together:
//   - an Input: required argument tensors, keyed by stable integer ids
//   - a Parameter: the algorithm's configuration record
//   - a Result: output tensors plus auxiliary data, allocated from the
//     Input's shapes by closed-form arithmetic
//   - a Container: a dispatch table selecting the numeric kernel for the
//     (Method, DataType) pair fixed at construction
//
// Compute() runs check, allocate and kernel invocation in that order and
// fails fast with a structured error; nothing is retried internally.
//
// The integer ids on argument collections are part of the public
// contract: foreign-language shims marshal get/set calls by id, so
// existing ids are never renumbered.
package compute
