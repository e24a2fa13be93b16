package solr

// Config holds configuration for the source occurrence index.
type Config struct {
	// BaseURL is the full select endpoint of the occurrence core.
	BaseURL string `mapstructure:"base_url" default:""`
	// Username is the basic-auth user.
	Username string `mapstructure:"username" default:""`
	// Password is the basic-auth password.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds is the request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// WindowMonths is how far ahead the valid-ID query looks.
	WindowMonths int `mapstructure:"window_months" default:"2"`
	// MinVolunteersNeeded filters out nearly full occurrences.
	// Zero disables the capacity criterion.
	MinVolunteersNeeded int `mapstructure:"min_volunteers_needed" default:"4"`
}
