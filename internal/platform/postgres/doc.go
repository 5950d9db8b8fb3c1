// Package postgres provides the PostgreSQL implementation of store.Table for
// cards, the embedded goose migrations that create its schema, and the
// mapping from driver errors to store errors.
package postgres
