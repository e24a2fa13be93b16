// Package registration implements the account-linking webhook.
//
// The source system notifies the receiver when a volunteer registers an
// account. Each notification is recorded and the volunteer is immediately
// linked on the platform; the link is only ever switched on.
//
// # HTTP Endpoints
//
//   - POST /webhooks/registrations : receive a registration notification.
package registration
