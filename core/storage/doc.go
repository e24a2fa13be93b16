// Package storage archives outbound dispatch batches to object storage.
//
// Archiving is strictly an audit aid: the ledger remains the source of
// truth for dispatch status, and a failed archive write never fails the
// dispatch itself. The archiver is disabled unless an endpoint is
// configured.
package storage
