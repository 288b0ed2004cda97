// Package postgres implements the store interfaces on top of PostgreSQL.
// Variant mappings and assessment answers are stored as JSONB; all
// implementations accept a store.DBTX so they run equally inside or
// outside a transaction.
package postgres
