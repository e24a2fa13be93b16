package reconcile

import (
	"testing"

	"vmp-sync/feature/occurrence/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAddsUnknownValidID(t *testing.T) {
	transition := Classify(true, false, LedgerState{}, `{"vmpJobId":"A1"}`)
	assert.Equal(t, TransitionAdd, transition)
}

func TestClassifyUpdatesChangedSnapshot(t *testing.T) {
	row := LedgerState{Exists: true, Status: models.StatusSent, JSON: `{"vmpJobId":"A1","quota":10}`}
	transition := Classify(true, false, row, `{"vmpJobId":"A1","quota":20}`)
	assert.Equal(t, TransitionUpdate, transition)
}

func TestClassifyUnchangedIgnoresKeyOrder(t *testing.T) {
	row := LedgerState{Exists: true, Status: models.StatusSent, JSON: `{"quota":10,"vmpJobId":"A1"}`}
	transition := Classify(true, false, row, `{"vmpJobId":"A1","quota":10}`)
	assert.Equal(t, TransitionUnchanged, transition)
}

func TestClassifyDeletesRowOutsideValidSet(t *testing.T) {
	row := LedgerState{Exists: true, Status: models.StatusSent, JSON: `{}`}
	transition := Classify(false, false, row, "")
	assert.Equal(t, TransitionDelete, transition)
}

func TestClassifyExpiryWinsOverListMembership(t *testing.T) {
	// The index still lists the id, but its expiry instant has passed.
	row := LedgerState{Exists: true, Status: models.StatusSent, JSON: `{}`}
	transition := Classify(true, true, row, `{}`)
	assert.Equal(t, TransitionDelete, transition)
}

func TestClassifyNeverRevivesDeletedRow(t *testing.T) {
	row := LedgerState{Exists: true, Status: models.StatusURLDeleted, JSON: `{}`}

	// Reappearing in the valid set does not revive the row.
	assert.Equal(t, TransitionUnchanged, Classify(true, false, row, `{"vmpJobId":"X123"}`))
	// Neither does vanishing again.
	assert.Equal(t, TransitionUnchanged, Classify(false, false, row, ""))
}

func TestClassifyUnknownInvalidIDIsNoop(t *testing.T) {
	transition := Classify(false, false, LedgerState{}, "")
	assert.Equal(t, TransitionUnchanged, transition)
}

func TestClassifyIsIdempotent(t *testing.T) {
	// Re-running with the snapshot a previous pass staged yields Unchanged.
	canonical := `{"vmpJobId":"A1","quota":10}`
	first := Classify(true, false, LedgerState{}, canonical)
	assert.Equal(t, TransitionAdd, first)

	row := LedgerState{Exists: true, Status: models.StatusURLAdded, JSON: canonical}
	second := Classify(true, false, row, canonical)
	assert.Equal(t, TransitionUnchanged, second)
}

func TestJSONEqual(t *testing.T) {
	assert.True(t, JSONEqual(
		[]byte(`{"a":1,"b":{"c":[1,2]}}`),
		[]byte(`{"b":{"c":[1,2]},"a":1}`),
	))
	assert.False(t, JSONEqual(
		[]byte(`{"a":1}`),
		[]byte(`{"a":2}`),
	))
	// Array order is significant.
	assert.False(t, JSONEqual(
		[]byte(`{"a":[1,2]}`),
		[]byte(`{"a":[2,1]}`),
	))
	// Malformed input never compares equal.
	assert.False(t, JSONEqual([]byte(`{`), []byte(`{`)))
}
