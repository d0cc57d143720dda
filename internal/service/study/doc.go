// Package study is the stateful side of the scheduler. It records answers
// (word update plus event append in one transaction, serialized per word),
// registers new words and serves the read models built from store
// snapshots: due and new words, daily activity and reminder thresholds.
package study
