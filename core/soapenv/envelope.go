package soapenv

import (
	"encoding/xml"
	"fmt"
)

// Envelope is the outbound-notification SOAP envelope the source system
// sends to the webhook receivers.
type Envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    Body     `xml:"Body"`
}

// Body wraps the notifications element.
type Body struct {
	Notifications Notifications `xml:"notifications"`
}

// Notifications carries one or more notification entries. The sender emits
// a single element when one record changed and a list otherwise; the slice
// absorbs both shapes.
type Notifications struct {
	Notification []Notification `xml:"Notification"`
}

// Notification is one changed record.
type Notification struct {
	SObject SObject `xml:"sObject"`
}

// SObject holds the record's fields. Field names arrive namespaced
// (sf:Some_Field__c), so they are collected generically and looked up by
// local name.
type SObject struct {
	Fields []Field `xml:",any"`
}

// Field is a single element inside an sObject.
type Field struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Get returns the value of the field with the given local name, or the
// empty string when absent.
func (o SObject) Get(local string) string {
	for _, f := range o.Fields {
		if f.XMLName.Local == local {
			return f.Value
		}
	}
	return ""
}

// Parse decodes an inbound notification envelope.
func Parse(body []byte) (*Envelope, error) {
	var env Envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse notification envelope: %w", err)
	}
	return &env, nil
}

const ackTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
    <soapenv:Body>
        <ns3:notificationResponse xmlns:ns3="http://soap.sforce.com/2005/09/outbound">
            <ns3:Ack>%t</ns3:Ack>
        </ns3:notificationResponse>
    </soapenv:Body>
</soapenv:Envelope>`

// Ack renders the acknowledgement envelope the sender expects. Its single
// boolean field tells the sender whether the notification was accepted.
func Ack(ok bool) string {
	return fmt.Sprintf(ackTemplate, ok)
}
