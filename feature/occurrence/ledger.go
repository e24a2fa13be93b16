package occurrence

import (
	"context"
	"fmt"

	"vmp-sync/feature/occurrence/models"

	"gorm.io/gorm"
)

// Ledger is the staging table of occurrence sync state. All access goes
// through parameterized statements; status strings and error messages are
// never interpolated into SQL.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger over the given connection.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Snapshot returns every row keyed by occurrence id.
func (l *Ledger) Snapshot(ctx context.Context) (map[string]models.OccurrenceRow, error) {
	var rows []models.OccurrenceRow
	if err := l.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	snapshot := make(map[string]models.OccurrenceRow, len(rows))
	for _, row := range rows {
		snapshot[row.OccurrenceID] = row
	}
	return snapshot, nil
}

// IDsWithStatus returns the ids of all rows in the given status.
func (l *Ledger) IDsWithStatus(ctx context.Context, status string) ([]string, error) {
	var ids []string
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("status = ?", status).
		Pluck("occurrenceId", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s ids: %w", status, err)
	}
	return ids, nil
}

// Create inserts a freshly observed occurrence, staged for dispatch.
func (l *Ledger) Create(ctx context.Context, id, canonicalJSON string) error {
	row := models.OccurrenceRow{
		OccurrenceID: id,
		Status:       models.StatusURLAdded,
		JSON:         canonicalJSON,
		Send:         true,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create ledger row %s: %w", id, err)
	}
	return nil
}

// StageUpdate overwrites the staged snapshot and re-flags dispatch.
func (l *Ledger) StageUpdate(ctx context.Context, id, canonicalJSON string) error {
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("occurrenceId = ?", id).
		Updates(map[string]any{
			"status": models.StatusURLUpdated,
			"json":   canonicalJSON,
			"send":   true,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to stage update for %s: %w", id, err)
	}
	return nil
}

// MarkDeleted transitions a row to URL_DELETED. Deleted rows are excluded
// from all future mapping and dispatch; there is no way back.
func (l *Ledger) MarkDeleted(ctx context.Context, id string) error {
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("occurrenceId = ?", id).
		Updates(map[string]any{
			"status": models.StatusURLDeleted,
			"send":   false,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark %s deleted: %w", id, err)
	}
	return nil
}

// Pending returns the rows currently flagged for dispatch.
func (l *Ledger) Pending(ctx context.Context) ([]models.OccurrenceRow, error) {
	var rows []models.OccurrenceRow
	err := l.db.WithContext(ctx).
		Where("send = ?", true).
		Order("occurrenceId").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending rows: %w", err)
	}
	return rows, nil
}

// MarkSent records a successful dispatch for the given ids.
func (l *Ledger) MarkSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("occurrenceId IN ?", ids).
		Updates(map[string]any{
			"status": models.StatusSent,
			"send":   false,
			"error":  "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark rows sent: %w", err)
	}
	return nil
}

// MarkErrored records a per-record rejection. Only the failing id is
// touched; its batch mates commit independently.
func (l *Ledger) MarkErrored(ctx context.Context, id, message string) error {
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("occurrenceId = ?", id).
		Updates(map[string]any{
			"status": models.StatusErrored,
			"send":   false,
			"error":  message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark %s errored: %w", id, err)
	}
	return nil
}

// MarkUnlisted records a successful unlist for the given ids.
func (l *Ledger) MarkUnlisted(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := l.db.WithContext(ctx).
		Model(&models.OccurrenceRow{}).
		Where("occurrenceId IN ?", ids).
		Updates(map[string]any{
			"status": models.StatusUnlisted,
			"send":   false,
			"error":  "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark rows unlisted: %w", err)
	}
	return nil
}
