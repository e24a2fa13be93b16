package reconcile

import (
	"encoding/json"
	"reflect"

	"vmp-sync/feature/occurrence/models"
)

// Transition is the lifecycle decision for one occurrence id within a
// reconciliation pass. Every id in the universe (valid-ID set unioned with
// the ledger) lands in exactly one transition.
type Transition int

const (
	// TransitionAdd creates a new ledger row and stages it for dispatch.
	TransitionAdd Transition = iota
	// TransitionUpdate overwrites the staged snapshot and re-flags dispatch.
	TransitionUpdate
	// TransitionUnchanged writes nothing.
	TransitionUnchanged
	// TransitionDelete marks the row URL_DELETED, permanently.
	TransitionDelete
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionAdd:
		return "ADD"
	case TransitionUpdate:
		return "UPDATE"
	case TransitionUnchanged:
		return "UNCHANGED"
	case TransitionDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// LedgerState is what the ledger currently knows about an id.
type LedgerState struct {
	// Exists reports whether a row exists at all.
	Exists bool
	// Status is the row's current status, empty when Exists is false.
	Status string
	// JSON is the staged canonical snapshot, empty when Exists is false.
	JSON string
}

// Classify decides the transition for one id.
//
// Rules, in order:
//
//  1. A deleted row stays deleted. The id is never revived even if it
//     reappears in the valid-ID set.
//  2. Expiry wins over list membership: a record whose source-reported
//     expiry instant has passed is deleted even while the index still
//     lists it.
//  3. An id absent from the valid-ID set deletes its row (if any).
//  4. An id present in the valid-ID set is added when unknown, updated
//     when its canonical snapshot changed, and left alone otherwise.
//
// canonicalJSON is the freshly mapped snapshot for the id; it may be empty
// when no mapping was possible this pass (the id then never reaches rule 4
// because it is absent from the valid set or expired).
func Classify(inValidSet, expired bool, row LedgerState, canonicalJSON string) Transition {
	if row.Exists && row.Status == models.StatusURLDeleted {
		return TransitionUnchanged
	}
	if expired || !inValidSet {
		if row.Exists {
			return TransitionDelete
		}
		return TransitionUnchanged
	}
	if !row.Exists {
		return TransitionAdd
	}
	if JSONEqual([]byte(row.JSON), []byte(canonicalJSON)) {
		return TransitionUnchanged
	}
	return TransitionUpdate
}

// JSONEqual reports whether two JSON documents are structurally equal,
// independent of key order. Update detection must be structural: a hash or
// byte comparison would either miss real updates or stage spurious ones
// whenever serialization order shifts.
func JSONEqual(a, b []byte) bool {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
