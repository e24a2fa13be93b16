package registration

import "time"

// Statuses of a collected registration row.
const (
	StatusNotSent  = "NOT_SENT"
	StatusLinked   = "LINKED"
	StatusUnlinked = "UNLINKED"
)

// RegistrationRow is one account-registration notification from the source
// system, recorded with the outcome of the platform link attempt.
type RegistrationRow struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	HohkID    string    `gorm:"column:hohkId"`
	JcvarID   string    `gorm:"column:jcvarId"`
	Status    string    `gorm:"column:status"`
	XML       string    `gorm:"column:xml"`
	Error     *string   `gorm:"column:error"`
	CreatedAt time.Time `gorm:"column:createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt"`
}

// TableName overrides the table name.
func (RegistrationRow) TableName() string {
	return "registrations"
}
