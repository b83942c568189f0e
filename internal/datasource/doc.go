// Package datasource provides lazily-connected CRUD over one named collection.
//
// A Base owns the connection handle and a per-instance collection cache. Write
// operations (Create, Update, Delete) report expected failures through
// domain.OperationResult and only return an error when the datasource has no
// collection bound. Read operations (FindAll, FindByID, Query) return storage
// errors to the caller; a missing document is (nil, nil).
//
// Edge specializes Base for edge-typed collections with endpoint lookups.
package datasource
