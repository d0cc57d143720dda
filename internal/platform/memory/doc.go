// Package memory provides in-process implementations of the store
// interfaces. It backs tests and single-process deployments that do not
// need durability; state is lost when the process exits.
package memory
