package servicehours

import "time"

// Statuses of a collected service-hour row.
const (
	StatusNotSent = "NOT_SENT"
	StatusSent    = "SENT"
	StatusErrored = "ERRORED"
)

// attendedStatus is the only attendance status that earns service hours.
// Every other status in the notification is dropped at collection time.
const attendedStatus = "Attended (and Hours Verified)"

// ServiceHourRow is one verified attendance record collected from the
// source system's webhook, staged until the dispatch pass sends it.
type ServiceHourRow struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	OccurrenceID string    `gorm:"column:occurrenceId"`
	VolunteerID  string    `gorm:"column:volunteerId"`
	StartDate    string    `gorm:"column:startDate"`
	EndDate      string    `gorm:"column:endDate"`
	Hours        float64   `gorm:"column:hours"`
	Status       string    `gorm:"column:status"`
	XML          string    `gorm:"column:xml"`
	Error        *string   `gorm:"column:error"`
	CreatedAt    time.Time `gorm:"column:createdAt"`
	UpdatedAt    time.Time `gorm:"column:updatedAt"`
}

// TableName overrides the table name.
func (ServiceHourRow) TableName() string {
	return "serviceHours"
}
