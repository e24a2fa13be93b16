// Package soapenv parses the SOAP outbound-notification envelopes delivered
// to the webhook receivers and renders the fixed acknowledgement envelope.
package soapenv
