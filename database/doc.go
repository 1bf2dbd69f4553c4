// Package database provides connection management, automatic reconnection
// with exponential backoff, health checks, schema migrations, foreign key
// handling, SQL seed data, configuration loading, driver error translation,
// and logging for the quiz backend, built on top of Bun.
package database
