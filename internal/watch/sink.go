package watch

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-feed/internal/domain"
)

// LogSink writes each new event to the logger. Used when no broker is
// configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, events []domain.EarthquakeRecord) error {
	for _, ev := range events {
		attrs := []any{
			"id", ev.ID,
			"place", ev.Place,
			"time", ev.Time,
			"lat", ev.Epicenter.Lat,
			"lon", ev.Epicenter.Lon,
		}
		if ev.Magnitude != nil {
			attrs = append(attrs, "magnitude", *ev.Magnitude)
		}
		if ev.Alert != nil {
			attrs = append(attrs, "alert", string(*ev.Alert))
		}
		s.logger.Info("earthquake", attrs...)
	}
	return nil
}
