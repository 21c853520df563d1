// internal/domain/notification/alert.go
package notification

import "context"

// Alert is the message sent when the station is overhead within the daylight
// window.
type Alert struct {
	Subject string
	Body    string
}

// DefaultAlert is the only alert the watcher ever sends.
var DefaultAlert = Alert{
	Subject: "ISS Overhead!",
	Body:    "Look Up! It is dark and the International Space Station is overhead!",
}

// Text renders the alert as a single plaintext message, for channels that have
// no subject line.
func (a Alert) Text() string {
	return a.Subject + "\n\n" + a.Body
}

// Notifier delivers an alert over one channel. Every call is a new delivery.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}
