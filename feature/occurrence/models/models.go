package models

// Locale keys of the localized canonical fields.
const (
	LocaleEnglish = "en"
	LocaleChinese = "zh"
)

// AdditionalInfo carries the source coordinates of the service location.
type AdditionalInfo struct {
	LocationLatitude  float64 `json:"locationLatitude"`
	LocationLongitude float64 `json:"locationLongitude"`
}

// CanonicalRecord is the destination-schema representation of one
// occurrence, produced by the field mapper from up to two locale variants
// of the raw source record.
//
// The record is a fixed-shape struct populated field by field; it is never
// grown or shrunk dynamically from the raw source structure. Localized maps
// carry an "en" key only when an English variant existed and a "zh" key
// only when a Chinese one did (unless locale backfill is enabled).
//
// AppImage and WebImage hold the source thumbnail URL while the record sits
// in the ledger; the dispatcher substitutes the base64 payload into both
// fields before a record leaves the process.
type CanonicalRecord struct {
	VmpJobID         string            `json:"vmpJobId"`
	OrganiserID      string            `json:"organiserId"`
	Visibility       string            `json:"visibility"`
	IsFull           bool              `json:"isFull"`
	PublishedAt      string            `json:"publishedAt,omitempty"`
	Name             map[string]string `json:"name"`
	Description      map[string]string `json:"description"`
	Schedules        map[string]string `json:"schedules"`
	URL              string            `json:"url,omitempty"`
	AppImage         string            `json:"appImage,omitempty"`
	WebImage         string            `json:"webImage,omitempty"`
	ApplicationStart string            `json:"applicationStart"`
	ApplicationEnd   string            `json:"applicationEnd"`
	ServiceStart     string            `json:"serviceStart"`
	ServiceEnd       string            `json:"serviceEnd"`
	Quota            int               `json:"quota"`
	Causes           []string          `json:"causes"`
	Recipients       []string          `json:"recipients"`
	Locations        []string          `json:"locations"`
	AdditionalInfo   *AdditionalInfo   `json:"additionalInfo,omitempty"`
}
