// Package config handles configuration loading, parsing, and validation
// from various sources (.env file, config.yaml, environment variables). It
// provides type-safe access to settings for the scheduler, the stores, the
// reminder job and the HTTP server while keeping configuration details
// separate from business logic.
package config
