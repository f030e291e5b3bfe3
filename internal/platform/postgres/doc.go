// Package postgres provides the PostgreSQL implementations of the interfaces
// defined in the internal/store package: a connection Pool that hands out
// pooled connections and a PostgresTodoStore that maps todos to rows of the
// todos table. It also embeds the goose migrations that create that table.
package postgres
