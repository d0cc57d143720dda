// Package postgres provides PostgreSQL implementations of the word and study
// event stores defined in the internal/store package, plus a Transactor that
// binds both to one database transaction. Connections are opened through the
// pgx stdlib driver.
package postgres
