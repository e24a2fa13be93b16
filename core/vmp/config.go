package vmp

// Config holds configuration for the destination volunteer platform API.
type Config struct {
	// Host is the API host, without scheme.
	Host string `mapstructure:"host" default:""`
	// Email is the account used for the login call.
	Email string `mapstructure:"email" default:""`
	// LoginPath is the path of the login endpoint.
	LoginPath string `mapstructure:"login_path" default:"api/auth/login"`
	// UpsertPath is the path of the occurrence upsert endpoint.
	UpsertPath string `mapstructure:"upsert_path" default:"api/jobs/upsert"`
	// UnlistPath is the path of the unlist endpoint.
	UnlistPath string `mapstructure:"unlist_path" default:"api/jobs/visibility"`
	// HoursPath is the path of the service-hours endpoint.
	HoursPath string `mapstructure:"hours_path" default:"api/hours"`
	// LinkPath is the path of the volunteer linkage endpoint.
	LinkPath string `mapstructure:"link_path" default:"api/volunteers/link"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxAttempts bounds the retries of every call.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BackoffSeconds is multiplied by the attempt number between retries.
	BackoffSeconds int `mapstructure:"backoff_seconds" default:"3"`
}
