// Package batch runs the pipeline once per input, strictly sequentially,
// with independent failure isolation per item: one failing file never aborts
// the rest. It is an explicit iteration over invocation requests, not a
// framework; there is no queue, no concurrency, and no state across runs.
package batch
