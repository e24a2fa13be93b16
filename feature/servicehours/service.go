package servicehours

import (
	"context"
	"fmt"
	"strconv"

	"vmp-sync/core/config"
	"vmp-sync/core/soapenv"
	"vmp-sync/core/utils"
	"vmp-sync/core/vmp"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notification field names, as the source system emits them (namespace
// prefix stripped).
const (
	fieldAttendanceStatus = "HOC__Attendance_Status__c"
	fieldOccurrence       = "HOC__Occurrence__c"
	fieldUserID           = "HOC_Contact_JCVAR_UserId__c"
	fieldStartDateTime    = "HOC_Occurrence_Start_Date_Time__c"
	fieldEndDateTime      = "HOC_Occurrence_End_Date_Time__c"
	fieldHoursServed      = "HOC__Number_Hours_Served__c"
)

// Service collects verified attendance notifications and dispatches the
// staged hours to the platform.
type Service struct {
	cfg    config.SyncConfig
	db     *gorm.DB
	vmp    *vmp.Client
	logger *zap.Logger
}

// NewService wires the service-hours service.
func NewService(cfg config.SyncConfig, db *gorm.DB, platform *vmp.Client, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, db: db, vmp: platform, logger: logger}
}

// Collect parses one webhook envelope and stages every verified attendance
// row it carries. Notifications in any other attendance status are dropped.
// The raw envelope is kept alongside each row for audit.
func (s *Service) Collect(ctx context.Context, body []byte) (int, error) {
	env, err := soapenv.Parse(body)
	if err != nil {
		return 0, err
	}

	var collected int
	for _, notification := range env.Body.Notifications.Notification {
		obj := notification.SObject
		if obj.Get(fieldAttendanceStatus) != attendedStatus {
			continue
		}

		occurrenceID := obj.Get(fieldOccurrence)
		volunteerID := obj.Get(fieldUserID)
		if occurrenceID == "" || volunteerID == "" {
			s.logger.Warn("attendance notification missing identity fields",
				zap.String("occurrenceId", occurrenceID),
				zap.String("volunteerId", volunteerID))
			continue
		}

		hours, err := strconv.ParseFloat(obj.Get(fieldHoursServed), 64)
		if err != nil {
			s.logger.Warn("attendance notification carries unparseable hours",
				zap.String("occurrenceId", occurrenceID),
				zap.String("volunteerId", volunteerID),
				zap.String("hours", obj.Get(fieldHoursServed)))
			continue
		}

		row := ServiceHourRow{
			OccurrenceID: occurrenceID,
			VolunteerID:  volunteerID,
			StartDate:    obj.Get(fieldStartDateTime),
			EndDate:      obj.Get(fieldEndDateTime),
			Hours:        hours,
			Status:       StatusNotSent,
			XML:          string(body),
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return collected, fmt.Errorf("failed to stage service hours for %s/%s: %w",
				occurrenceID, volunteerID, err)
		}
		collected++
	}

	s.logger.Info("service hours collected",
		zap.Int("notifications", len(env.Body.Notifications.Notification)),
		zap.Int("collected", collected))
	return collected, nil
}

// Dispatch sends all staged service hours to the platform in batches.
//
// Volunteers the platform does not know, or knows but has not linked, are
// excluded up front without erroring their rows; they stay staged and get
// another chance once the volunteer links their account. Per-record
// rejections are matched back on the (occurrence, volunteer) pair.
func (s *Service) Dispatch(ctx context.Context) (string, error) {
	var rows []ServiceHourRow
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusNotSent).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return "", fmt.Errorf("failed to load staged service hours: %w", err)
	}
	if len(rows) == 0 {
		return "Sent 0 service hour record(s) in 0 batch(es) to the VMP", nil
	}

	token, err := s.vmp.Login(ctx)
	if err != nil {
		return "", err
	}

	sendable, err := s.filterLinked(ctx, token, rows)
	if err != nil {
		return "", err
	}

	batches := utils.Chunk(sendable, s.cfg.HoursBatchSize)

	var sent, errored int
	for n, batch := range batches {
		records := make([]vmp.ServiceHourRecord, len(batch))
		for i, row := range batch {
			records[i] = toRecord(row)
		}

		result, err := s.vmp.SendServiceHours(ctx, token, records)
		if err != nil {
			s.logger.Error("service hours batch failed",
				zap.Int("batch", n), zap.Int("size", len(batch)), zap.Error(err))
			continue
		}

		rejected := make(map[[2]string]string, len(result.Error.Data))
		for _, itemErr := range result.Error.Data {
			rejected[[2]string{itemErr.JobID, itemErr.UserID}] = itemErr.Message
		}

		for _, row := range batch {
			message, isRejected := rejected[[2]string{row.OccurrenceID, row.VolunteerID}]
			if isRejected {
				if err := s.markRow(ctx, row.ID, StatusErrored, message); err != nil {
					return "", err
				}
				errored++
				continue
			}
			if err := s.markRow(ctx, row.ID, StatusSent, ""); err != nil {
				return "", err
			}
			sent++
		}
	}

	summary := fmt.Sprintf("Sent %d service hour record(s) in %d batch(es) to the VMP", sent, len(batches))
	if errored > 0 {
		summary += fmt.Sprintf(", %d rejected", errored)
	}
	s.logger.Info("service hours dispatch pass finished",
		zap.Int("staged", len(rows)),
		zap.Int("sendable", len(sendable)),
		zap.Int("sent", sent),
		zap.Int("rejected", errored),
		zap.Int("batches", len(batches)))
	return summary, nil
}

// filterLinked keeps only the rows whose volunteer has an active platform
// link. Each distinct volunteer is checked once per pass.
func (s *Service) filterLinked(ctx context.Context, token string, rows []ServiceHourRow) ([]ServiceHourRow, error) {
	linkedByID := make(map[string]bool)

	sendable := make([]ServiceHourRow, 0, len(rows))
	for _, row := range rows {
		linked, checked := linkedByID[row.VolunteerID]
		if !checked {
			var found bool
			var err error
			linked, found, err = s.vmp.IsVolunteerLinked(ctx, token, row.VolunteerID)
			if err != nil {
				return nil, fmt.Errorf("failed to check volunteer link %s: %w", row.VolunteerID, err)
			}
			linked = linked && found
			linkedByID[row.VolunteerID] = linked
		}
		if !linked {
			s.logger.Info("volunteer not linked, holding service hours",
				zap.String("volunteerId", row.VolunteerID),
				zap.String("occurrenceId", row.OccurrenceID))
			continue
		}
		sendable = append(sendable, row)
	}
	return sendable, nil
}

// toRecord converts a staged row into the platform's schema. Timestamps are
// normalized to UTC when parseable and passed through verbatim otherwise;
// the platform rejects what it cannot read and the rejection lands in the
// row's error column.
func toRecord(row ServiceHourRow) vmp.ServiceHourRecord {
	record := vmp.ServiceHourRecord{
		VmpJobID:      row.OccurrenceID,
		VarUserID:     row.VolunteerID,
		StartDateTime: row.StartDate,
		EndDateTime:   row.EndDate,
		Hour:          row.Hours,
	}
	if t, err := utils.ParseSourceTime(row.StartDate); err == nil {
		record.StartDateTime = utils.FormatUTC(t)
	}
	if t, err := utils.ParseSourceTime(row.EndDate); err == nil {
		record.EndDateTime = utils.FormatUTC(t)
	}
	return record
}

func (s *Service) markRow(ctx context.Context, id uint, status, message string) error {
	err := s.db.WithContext(ctx).
		Model(&ServiceHourRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"error":  message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark service hour row %d: %w", id, err)
	}
	return nil
}
