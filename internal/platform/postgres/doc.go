// Package postgres implements the store interfaces against PostgreSQL
// using database/sql with the pgx driver. Database errors are translated
// to the store package's sentinel errors so callers never depend on
// driver-specific error types.
package postgres
