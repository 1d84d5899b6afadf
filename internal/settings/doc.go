// Package settings implements the namespaced key/value configuration store.
//
// A [Store] serves one namespace. Reads go through the advisory cache and
// fall back to the database. Writes are buffered with Set and persisted by
// Save in a single transaction; buffered values stay invisible to readers
// until then.
package settings
