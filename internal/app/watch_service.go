// internal/app/watch_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/notification"
	"iss_overhead_notifier/internal/domain/observer"
	"iss_overhead_notifier/internal/domain/station"
	"iss_overhead_notifier/internal/infra/metrics"
)

// Retrier runs a network call under a retry policy.
type Retrier interface {
	Do(ctx context.Context, name string, op func(ctx context.Context) error) error
}

// Outcome records what one watch iteration found and did.
type Outcome struct {
	Overhead bool
	Daylight bool // Only evaluated when Overhead is true
	Notified bool
}

// WatchService decides, once per call to RunCheck, whether the station is
// overhead inside the daylight window and alerts if so.
type WatchService struct {
	observer observer.Coordinate
	locator  station.Locator
	sun      daylight.Provider // Called once per check; wrap in RetryingProvider to retry
	notifier notification.Notifier
	retrier  Retrier
	logger   *logrus.Entry
	now      func() time.Time
}

func NewWatchService(
	obs observer.Coordinate,
	locator station.Locator,
	sun daylight.Provider,
	notifier notification.Notifier,
	retrier Retrier,
	logger *logrus.Entry,
) *WatchService {
	return &WatchService{
		observer: obs,
		locator:  locator,
		sun:      sun,
		notifier: notifier,
		retrier:  retrier,
		logger:   logger,
		now:      time.Now,
	}
}

// StationOverhead reports whether the station is within the tolerance box
// around the observer right now.
func (s *WatchService) StationOverhead(ctx context.Context) (bool, error) {
	var pos station.Position
	start := time.Now()
	err := s.retrier.Do(ctx, "iss_position", func(ctx context.Context) error {
		var err error
		pos, err = s.locator.CurrentPosition(ctx)
		return err
	})
	metrics.ObserveAPIDuration("iss_position", time.Since(start).Seconds())
	if err != nil {
		return false, fmt.Errorf("failed to get ISS position: %w", err)
	}

	metrics.SetStationPosition(pos.Latitude, pos.Longitude)
	overhead := s.observer.Overhead(pos)
	s.logger.WithFields(logrus.Fields{
		"iss_lat":  pos.Latitude,
		"iss_lng":  pos.Longitude,
		"overhead": overhead,
	}).Debug("ISS position checked")
	return overhead, nil
}

// DaylightNow reports whether the current hour on the observer's clock is
// inside today's [sunrise hour, sunset hour] window. Retries, if any, belong
// to the daylight.Provider passed in (see RetryingProvider).
func (s *WatchService) DaylightNow(ctx context.Context) (bool, error) {
	start := time.Now()
	w, err := s.sun.Window(ctx, s.observer)
	metrics.ObserveAPIDuration("sun_times", time.Since(start).Seconds())
	if err != nil {
		return false, fmt.Errorf("failed to get sunrise/sunset: %w", err)
	}

	now := s.now()
	loc := now.Location()
	inWindow := w.Contains(now.Hour(), loc)
	s.logger.WithFields(logrus.Fields{
		"sunrise_hour": w.SunriseHour(loc),
		"sunset_hour":  w.SunsetHour(loc),
		"now_hour":     now.Hour(),
		"daylight":     inWindow,
	}).Debug("Daylight checked")
	return inWindow, nil
}

// RunCheck performs one watch iteration: location check, then (only if the
// station is overhead) daylight check, then at most one alert when both hold.
func (s *WatchService) RunCheck(ctx context.Context) (Outcome, error) {
	var out Outcome
	if err := ctx.Err(); err != nil {
		return out, err
	}

	overhead, err := s.StationOverhead(ctx)
	if err != nil {
		return out, err
	}
	out.Overhead = overhead
	if !overhead {
		metrics.ObserveCheck(metrics.OutcomeNotOverhead)
		return out, nil
	}

	inWindow, err := s.DaylightNow(ctx)
	if err != nil {
		return out, err
	}
	out.Daylight = inWindow
	if !inWindow {
		s.logger.Info("ISS is overhead but the hour is outside the daylight window")
		metrics.ObserveCheck(metrics.OutcomeOutsideWindow)
		return out, nil
	}

	s.logger.Infof("ISS is overhead %s inside the daylight window. Sending alert.", s.observer)
	err = s.notifier.Notify(ctx, notification.DefaultAlert)
	metrics.ObserveNotification(err)
	if err != nil {
		return out, fmt.Errorf("failed to send alert: %w", err)
	}
	out.Notified = true
	metrics.ObserveCheck(metrics.OutcomeNotified)
	s.logger.Info("Alert sent")
	return out, nil
}
