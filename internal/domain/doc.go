// Package domain contains the core entities of the vocabulary study core:
// words under spaced repetition, the answers given for them and the study
// events those answers produce. It is independent of any storage or
// delivery mechanism.
package domain
