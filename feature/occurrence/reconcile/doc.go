// Package reconcile decides the lifecycle transition of every occurrence
// id on each sync pass: added, updated, unchanged or deleted.
//
// The decision compares the source index's current valid-ID set against
// the ledger, always against current truth. A pass interrupted halfway
// leaves the ledger consistent but stale, and the next pass repairs it
// naturally because nothing here depends on what happened last time.
package reconcile
