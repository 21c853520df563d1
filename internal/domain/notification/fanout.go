package notification

import (
	"context"
	"errors"
	"fmt"
)

// Channel is a Notifier with a name, used in logs and metrics.
type Channel struct {
	Name     string
	Notifier Notifier
}

// Fanout delivers an alert to every channel in order. A failing channel does
// not stop the rest; all failures are joined into the returned error.
type Fanout struct {
	channels []Channel
}

func NewFanout(channels ...Channel) *Fanout {
	return &Fanout{channels: channels}
}

// Channels returns the names of the configured channels.
func (f *Fanout) Channels() []string {
	names := make([]string, 0, len(f.channels))
	for _, ch := range f.channels {
		names = append(names, ch.Name)
	}
	return names
}

func (f *Fanout) Notify(ctx context.Context, alert Alert) error {
	var errs []error
	for _, ch := range f.channels {
		if err := ch.Notifier.Notify(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
		}
	}
	return errors.Join(errs...)
}
