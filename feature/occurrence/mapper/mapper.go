package mapper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vmp-sync/core/images"
	"vmp-sync/core/solr"
	"vmp-sync/core/utils"
	"vmp-sync/feature/occurrence/models"

	"go.uber.org/zap"
)

// Schedule labels and description fallbacks per locale.
const (
	scheduleLabelEN = "Volunteer Service"
	scheduleLabelZH = "義工服務"

	descriptionFallbackEN = "Please refer to the opportunity page for details."
	descriptionFallbackZH = "詳情請參閱活動頁面。"
)

// scheduleTimeLayout renders instants the way the destination displays
// them, e.g. "Mon, 02 January 2006 03:04PM".
const scheduleTimeLayout = "Mon, 02 January 2006 03:04PM"

// hongKong is the display zone of the schedule text. Occurrences always
// happen in Hong Kong no matter what zone the source timestamps carry.
var hongKong = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Hong_Kong")
	if err != nil {
		return time.FixedZone("HKT", 8*60*60)
	}
	return loc
}()

// Options tunes mapping behavior.
type Options struct {
	// BackfillLocale duplicates the present locale's name, description and
	// schedule text into the missing locale's key. The current mapping
	// generation leaves the missing locale absent; the switch exists
	// because earlier consumers relied on the duplicated form.
	BackfillLocale bool
}

// Mapper transforms raw locale variants of an occurrence into one
// canonical destination record. Mapping is pure: the same input pair
// always yields the same record, and inputs are never mutated.
type Mapper struct {
	opts   Options
	logger *zap.Logger
}

// New creates a mapper.
func New(opts Options, logger *zap.Logger) *Mapper {
	return &Mapper{opts: opts, logger: logger}
}

// Map builds the canonical record from the English and/or Chinese variant.
// It fails only when both are absent, or when the primary variant carries
// unparseable timestamps.
func (m *Mapper) Map(en, zh *solr.Document) (*models.CanonicalRecord, error) {
	primary := en
	if primary == nil {
		primary = zh
	}
	if primary == nil {
		return nil, fmt.Errorf("no locale variant to map")
	}

	serviceStart, err := utils.ParseSourceTime(primary.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("occurrence %s: bad start time: %w", primary.OccurrenceID, err)
	}
	serviceEnd, err := utils.ParseSourceTime(primary.EndDateTime)
	if err != nil {
		return nil, fmt.Errorf("occurrence %s: bad end time: %w", primary.OccurrenceID, err)
	}
	created, err := utils.ParseSourceTime(primary.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("occurrence %s: bad creation time: %w", primary.OccurrenceID, err)
	}

	rec := &models.CanonicalRecord{
		VmpJobID:    primary.OccurrenceID,
		OrganiserID: normalizeOrganiserID(primary.OrganizationID),
		Visibility:  "public",
		IsFull:      primary.MaximumAttendance-primary.VolunteersNeeded <= 0,
		PublishedAt: utils.FormatUTC(created),
		URL:         primary.DetailURL,
		Quota:       primary.MaximumAttendance,

		// Application closes one calendar day before the service ends.
		// Everything is computed from the service end instant, never from
		// the wall clock.
		ApplicationStart: utils.FormatUTC(created),
		ApplicationEnd:   utils.FormatUTC(serviceEnd.AddDate(0, 0, -1)),
		ServiceStart:     utils.FormatUTC(serviceStart),
		ServiceEnd:       utils.FormatUTC(serviceEnd),

		Name:        map[string]string{},
		Description: map[string]string{},
		Schedules:   map[string]string{},

		Causes:     m.mapCauses(primary.OccurrenceID, primary.CategoryTags),
		Recipients: m.mapRecipients(primary.OccurrenceID, primary.PopulationsServed),

		// The source supplies one thumbnail; both aspect-ratio slots reuse
		// it. The URL form is staged here, the dispatcher inlines the
		// encoded payload before sending.
		AppImage: primary.ThumbnailURL,
		WebImage: primary.ThumbnailURL,

		AdditionalInfo: &models.AdditionalInfo{
			LocationLatitude:  primary.Latitude,
			LocationLongitude: primary.Longitude,
		},
	}

	if en != nil {
		m.fillLocale(rec, models.LocaleEnglish, en, serviceStart, serviceEnd)
	}
	if zh != nil {
		m.fillLocale(rec, models.LocaleChinese, zh, serviceStart, serviceEnd)
	}
	if m.opts.BackfillLocale {
		backfill(rec.Name, models.LocaleEnglish, models.LocaleChinese)
		backfill(rec.Description, models.LocaleEnglish, models.LocaleChinese)
		backfill(rec.Schedules, models.LocaleEnglish, models.LocaleChinese)
	}

	var enAddress, zhAddress string
	if en != nil {
		enAddress = en.LocationAddress
	}
	if zh != nil {
		zhAddress = zh.LocationAddress
	}
	rec.Locations = districtFor(enAddress, zhAddress)

	return rec, nil
}

func (m *Mapper) fillLocale(rec *models.CanonicalRecord, locale string, doc *solr.Document, start, end time.Time) {
	rec.Name[locale] = strings.TrimSpace(doc.Title)

	description := strings.TrimSpace(doc.Description)
	if description == "" {
		if locale == models.LocaleChinese {
			description = descriptionFallbackZH
		} else {
			description = descriptionFallbackEN
		}
	}
	rec.Description[locale] = description

	label := scheduleLabelEN
	if locale == models.LocaleChinese {
		label = scheduleLabelZH
	}
	rec.Schedules[locale] = strings.Join([]string{
		label,
		start.In(hongKong).Format(scheduleTimeLayout),
		end.In(hongKong).Format(scheduleTimeLayout),
		doc.LocationAddress,
	}, "\n")
}

func (m *Mapper) mapCauses(id string, tags []string) []string {
	causes := make([]string, 0, len(tags))
	for _, tag := range tags {
		cause, ok := causeByCategoryTag[tag]
		if !ok {
			m.logger.Info("category tag has no cause mapping",
				zap.String("occurrenceId", id), zap.String("tag", tag))
			continue
		}
		causes = append(causes, cause)
	}
	return causes
}

func (m *Mapper) mapRecipients(id string, populations []string) []string {
	recipients := make([]string, 0, len(populations))
	for _, population := range populations {
		recipient, ok := recipientByPopulation[population]
		if !ok {
			m.logger.Info("population tag has no recipient mapping",
				zap.String("occurrenceId", id), zap.String("tag", population))
			continue
		}
		recipients = append(recipients, recipient)
	}
	return recipients
}

func backfill(values map[string]string, a, b string) {
	if _, ok := values[a]; !ok {
		if v, present := values[b]; present {
			values[a] = v
		}
	}
	if _, ok := values[b]; !ok {
		if v, present := values[a]; present {
			values[b] = v
		}
	}
}

// normalizeOrganiserID strips the trailing 3 characters off 18-character
// organizer ids. The source system appends a checksum suffix to its
// 15-character ids; the destination stores the short form.
func normalizeOrganiserID(id string) string {
	if len(id) == 18 {
		return id[:15]
	}
	return id
}

// InlineImages substitutes the staged thumbnail URL with its base64
// payload in both image slots. It must run before a record is handed to
// the dispatcher; ledger snapshots keep the URL form so that reconciliation
// never depends on image bytes.
func InlineImages(ctx context.Context, rec *models.CanonicalRecord, cache *images.Cache) error {
	encoded, err := cache.Base64(ctx, rec.AppImage)
	if err != nil {
		return fmt.Errorf("occurrence %s: %w", rec.VmpJobID, err)
	}
	rec.AppImage = encoded
	rec.WebImage = encoded
	return nil
}
