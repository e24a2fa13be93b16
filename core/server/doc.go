// Package server holds the configuration of the HTTP trigger surface.
//
// The sync passes are triggered either by inbound HTTP calls or by the
// cron schedule configured here. The server itself is assembled in cmd.
package server
