// Package editor provides the document-model host contract consumed by
// the table-editing feature, together with a reference in-memory
// implementation.
//
// # Transactions
//
// All mutations run inside [Editor.Update]: an atomic, serialized
// transaction. Mutating a node first obtains a writable clone through
// [Writable] (copy-on-write under the same stable key); on commit the
// clones are sealed and swapped into the registry, the element projection
// is re-rendered, and registered mutation listeners fire with a map from
// node key to [Mutation]. If the update callback returns an error the
// transaction aborts and no partial mutation is left committed.
//
// # Table operations
//
// The transaction exposes the structural grid edits the action menu
// issues: [Txn.InsertRows], [Txn.RemoveRow], [Txn.InsertColumns],
// [Txn.RemoveColumn], [Txn.RemoveTable], plus ancestor resolution and
// row/column index computation.
//
// # Errors
//
// Failures are coded [*Error] values (missing projection, out-of-bounds
// grid index, wrong node kind, detached node, no transaction). All are
// fatal to the in-progress transaction; none are retried.
package editor
