package registration

import (
	"context"
	"fmt"

	"vmp-sync/core/soapenv"
	"vmp-sync/core/vmp"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notification field names of the registration notification (namespace
// prefix stripped).
const (
	fieldHohkID  = "Id"
	fieldJcvarID = "JCVAR_UserId__c"
)

// Service records account registrations and links them on the platform.
type Service struct {
	db     *gorm.DB
	vmp    *vmp.Client
	logger *zap.Logger
}

// NewService wires the registration service.
func NewService(db *gorm.DB, platform *vmp.Client, logger *zap.Logger) *Service {
	return &Service{db: db, vmp: platform, logger: logger}
}

// Collect parses one registration envelope, records each notification and
// immediately attempts the platform link. Linking only ever turns the link
// on; nothing in this pipeline unlinks an account.
//
// A volunteer the platform has never seen is logged and left NOT_SENT; the
// row documents that the registration arrived before the platform account
// existed.
func (s *Service) Collect(ctx context.Context, body []byte) (int, error) {
	env, err := soapenv.Parse(body)
	if err != nil {
		return 0, err
	}

	token, err := s.vmp.Login(ctx)
	if err != nil {
		return 0, err
	}

	var linked int
	for _, notification := range env.Body.Notifications.Notification {
		obj := notification.SObject
		hohkID := obj.Get(fieldHohkID)
		jcvarID := obj.Get(fieldJcvarID)
		if jcvarID == "" {
			s.logger.Warn("registration notification missing user id",
				zap.String("hohkId", hohkID))
			continue
		}

		row := RegistrationRow{
			HohkID:  hohkID,
			JcvarID: jcvarID,
			Status:  StatusNotSent,
			XML:     string(body),
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return linked, fmt.Errorf("failed to record registration %s: %w", jcvarID, err)
		}

		result, found, err := s.vmp.LinkVolunteer(ctx, token, jcvarID, true)
		switch {
		case err != nil:
			s.logger.Error("volunteer link failed",
				zap.String("jcvarId", jcvarID), zap.Error(err))
			if err := s.markRow(ctx, row.ID, StatusNotSent, err.Error()); err != nil {
				return linked, err
			}
		case !found:
			s.logger.Info("volunteer unknown to the platform, link deferred",
				zap.String("jcvarId", jcvarID))
		case result.IsLink != nil && *result.IsLink:
			if err := s.markRow(ctx, row.ID, StatusLinked, ""); err != nil {
				return linked, err
			}
			linked++
		default:
			s.logger.Warn("platform declined to link volunteer",
				zap.String("jcvarId", jcvarID), zap.String("message", result.Message))
			if err := s.markRow(ctx, row.ID, StatusUnlinked, result.Message); err != nil {
				return linked, err
			}
		}
	}

	s.logger.Info("registrations collected",
		zap.Int("notifications", len(env.Body.Notifications.Notification)),
		zap.Int("linked", linked))
	return linked, nil
}

func (s *Service) markRow(ctx context.Context, id uint, status, message string) error {
	err := s.db.WithContext(ctx).
		Model(&RegistrationRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"error":  message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark registration row %d: %w", id, err)
	}
	return nil
}
