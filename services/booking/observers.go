package booking

import (
	"hussboss/metrics"

	"go.uber.org/zap"
)

// LogTransitions logs every transition at debug level.
func LogTransitions(logger *zap.Logger) Observer {
	return func(t Transition) {
		logger.Debug("Booking transition", zap.String("page", t.Page),
			zap.Stringer("from", t.From), zap.Stringer("to", t.To))
	}
}

// CountTransitions feeds the booking transition counter.
func CountTransitions(t Transition) {
	metrics.BookingTransitions.WithLabelValues(t.Page, t.From.String(), t.To.String()).Inc()
}
