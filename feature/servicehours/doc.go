// Package servicehours implements the verified-attendance pipeline.
//
// The source system pushes SOAP-enveloped attendance notifications to the
// webhook; only rows in the verified status are staged. A separate dispatch
// pass sends staged hours to the platform in batches, excluding volunteers
// without an active platform link so their hours wait instead of erroring.
//
// # HTTP Endpoints
//
//   - POST /webhooks/servicehours : receive an attendance notification.
//   - GET /dispatch/servicehours : send staged hours to the platform.
package servicehours
