// Package testdb provides utilities specifically for database testing: a
// migrated PostgreSQL handle (from DATABASE_URL, or a throwaway container
// when Docker is available) and transaction-scoped test isolation.
// The helpers are compiled only with the integration build tag.
package testdb
