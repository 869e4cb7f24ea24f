// Package catalog reads live table and column metadata.
//
// Nothing is cached: every call runs a fresh query, so results reflect
// concurrent schema changes made outside colsweep. A Reader is bound to a
// session (the pool, a single connection or an open transaction) and to the
// dialect profile that decides which catalog views to query, which tables are
// system tables and how column names fold.
package catalog
