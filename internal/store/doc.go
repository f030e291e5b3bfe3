// Package store defines interfaces for data persistence operations: the
// TodoStore record store and the ConnectionProvider that hands out pooled
// connections. It also holds the error taxonomy shared by every
// implementation, so handlers can inspect failures without depending on a
// specific database technology.
package store
