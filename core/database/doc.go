// Package database provides the connection to the relational ledger.
//
// The ledger is the single shared resource of the sync system: it tracks
// per-occurrence sync status, staged canonical JSON, and dispatch flags.
// Connections are established through GORM with parameterized statements
// only; no SQL is ever assembled from strings.
//
// The initial connection is retried a bounded number of times because the
// ledger runs on a serverless tier that may need to resume on first contact.
package database
