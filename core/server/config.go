package server

// Config holds configuration for the HTTP trigger surface.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the sync endpoints.
	ApiKey string `mapstructure:"api_key" default:""`
	// Schedule is the cron expression for the periodic cache pass.
	// Empty disables the scheduler.
	Schedule string `mapstructure:"schedule" default:"0 */2 * * *"`
}
