// Package models defines the canonical occurrence record shipped to the
// destination platform and the ledger row that stages it.
package models
