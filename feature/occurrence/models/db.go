package models

import "time"

// Ledger statuses of an occurrence row.
const (
	StatusURLAdded   = "URL_ADDED"
	StatusURLUpdated = "URL_UPDATED"
	StatusURLDeleted = "URL_DELETED"
	StatusSent       = "SENT"
	StatusErrored    = "ERRORED"
	StatusUnlisted   = "UNLISTED"
	StatusNotSent    = "NOT_SENT"
)

// OccurrenceRow is one staged occurrence in the ledger.
//
// JSON holds the last canonical snapshot computed for the id; Send is set
// whenever that snapshot differs from what the destination last accepted
// (or the row is new). A row that reaches URL_DELETED stays deleted: it is
// never revived, re-mapped or re-sent, even if the id reappears upstream.
type OccurrenceRow struct {
	OccurrenceID string    `gorm:"column:occurrenceId;primaryKey"`
	Status       string    `gorm:"column:status"`
	JSON         string    `gorm:"column:json"`
	Send         bool      `gorm:"column:send"`
	Error        *string   `gorm:"column:error"`
	CreatedAt    time.Time `gorm:"column:createdAt"`
	UpdatedAt    time.Time `gorm:"column:updatedAt"`
}

// TableName overrides the table name.
func (OccurrenceRow) TableName() string {
	return "occurrences"
}
