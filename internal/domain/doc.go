// Package domain defines the core types of asetgraph.
//
// # Documents
//
// Document is a schema-less record. Every stored document carries a storage
// key (_key) and a fully-qualified identifier (_id, "collection/key"). Edge
// documents additionally carry _from and _to, both fully-qualified identifiers
// of documents in other collections.
//
// createdAt and updatedAt are millisecond ISO-8601 timestamps maintained by
// the datasource layer, not by callers.
//
// # Results
//
// Mutations report expected failures as an OperationResult instead of an
// error. ConnectionResult extends it with the outcome of a relationship check.
//
// # Errors
//
// Sentinel errors are wrapped with fmt.Errorf and checked with errors.Is.
// StorageError wraps driver and connectivity failures.
//
// This package has no dependencies outside the standard library.
package domain
