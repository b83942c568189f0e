// Package repository defines the data access interfaces for asetgraph.
//
// A Database is a live connection to a store holding named collections of
// schema-less JSON documents. Each collection is either document-typed or
// edge-typed; the type is recorded in a catalog when the collection is created
// and never changes. Edge collections additionally index the _from and _to
// endpoints of every document.
//
// The SQL implementation lives in the sqldb subpackage and supports SQLite
// (embedded, default) and PostgreSQL.
//
// # Selectors
//
// Collection operations take a Selector combining an identifier match
// (storage key OR domain id field), flat equality filters and a limit. Filter
// values and JSON paths are always bound parameters.
package repository
