// Package sqlite provides SQLite implementations of the word and study event
// stores, built on sqlx and the go-sqlite3 driver. It is the default backend
// for single-user deployments.
package sqlite
