// Package config loads the application configuration.
//
// Configuration comes from environment variables (optionally seeded from a
// .env file) and is unmarshalled into nested partial configs owned by the
// core packages. Struct tags carry the defaults; SERVER_PORT maps to
// server.port, SOLR_BASE_URL to solr.base_url, and so on.
package config
