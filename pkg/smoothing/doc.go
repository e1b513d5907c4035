// Package smoothing turns noisy per-frame face attributes into stable
// display values.
//
// Detectors jitter: the same person reads as "happy" on one frame and
// "neutral" on the next, and age estimates wander by several years between
// frames. This package keeps a bounded sliding window of recent accepted
// observations per attribute and derives the value to display from the
// whole window instead of the latest frame:
//
//   - emotion: most frequent label, ties broken by average confidence
//   - gender: most frequent label
//   - age: arithmetic mean
//
// All aggregation is pure and synchronous, O(window size) per call. The
// buffers are plain single-writer state owned by one analysis session;
// nothing here locks or blocks.
package smoothing
