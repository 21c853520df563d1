package daylight

import (
	"context"
	"fmt"

	"iss_overhead_notifier/internal/domain/observer"
)

// Fallback asks Primary first and Secondary only if Primary fails. Retries
// belong inside Primary; Fallback itself calls each provider once.
type Fallback struct {
	Primary   Provider
	Secondary Provider

	// OnFallback, if set, is called with the primary error before Secondary is
	// consulted.
	OnFallback func(err error)
}

func (f *Fallback) Window(ctx context.Context, c observer.Coordinate) (Window, error) {
	w, err := f.Primary.Window(ctx, c)
	if err == nil {
		return w, nil
	}
	if ctx.Err() != nil {
		return Window{}, err
	}
	if f.OnFallback != nil {
		f.OnFallback(err)
	}

	w, secErr := f.Secondary.Window(ctx, c)
	if secErr != nil {
		return Window{}, fmt.Errorf("primary: %w; secondary: %v", err, secErr)
	}
	return w, nil
}
