// Package compare computes per-component error statistics between two
// equally shaped tuple arrays and decides pass/fail against absolute and
// relative thresholds. All statistics are accumulated in a single pass;
// the L2 norms are kept in squared form and square-rooted on read.
package compare
