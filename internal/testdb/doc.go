// Package testdb provides database fixtures for tests: an in-memory SQLite
// database with the schema applied, and a PostgreSQL connection for
// integration tests that is skipped unless LEXICON_TEST_DATABASE_URL is set.
package testdb
