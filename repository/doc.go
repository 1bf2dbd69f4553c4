// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, querying, counting, pagination, transactions, and
// dialect-aware upsert support.
package repository
