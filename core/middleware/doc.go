// Package middleware groups the HTTP middlewares of the trigger surface:
//
//   - rayid: assigns a correlation id to every request
//   - auth: api-key guard for the sync endpoints
package middleware
