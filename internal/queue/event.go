// Package queue defines message payloads exchanged over the message broker.
package queue

// SMSOutboundQueue is the durable queue carrying SMS dispatch events from
// the API to whatever delivers them (the bundled consumer logs them; a real
// provider integration would consume the same queue).
const SMSOutboundQueue = "sms.outbound"

// SMSDispatchEvent is published when a reset code must reach a user by SMS.
// MessageID correlates broker logs with API logs.
type SMSDispatchEvent struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
	Body      string `json:"body"`
	QueuedAt  string `json:"queued_at"`
}
