package navigator

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// UpdateEvent describes the state of a route after it changed.
type UpdateEvent struct {
	Route   Route
	Facets  int
	Pace    float64
	Elapsed time.Duration
}

// FilterEvent describes the outcome of ranking the current facets.
type FilterEvent struct {
	Mode    string
	Route   Route
	Kept    int
	Total   int
	Cached  bool
	Elapsed time.Duration
}

// Observer is notified about navigation progress. Implementations must
// not call back into the Navigator.
type Observer interface {
	Updated(e UpdateEvent)
	Filtered(e FilterEvent)
	Progress(op string, done, total int)
}

type NopObserver struct{}

func (NopObserver) Updated(UpdateEvent)       {}
func (NopObserver) Filtered(FilterEvent)      {}
func (NopObserver) Progress(string, int, int) {}

// LoggingObserver logs events. Progress reports are rate limited.
type LoggingObserver struct {
	logger  logrus.FieldLogger
	limiter *rate.Limiter
}

// NewLoggingObserver returns an observer that logs at most perSecond
// progress reports per second, with bursts of one.
func NewLoggingObserver(logger logrus.FieldLogger, perSecond float64) *LoggingObserver {
	return &LoggingObserver{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (o *LoggingObserver) Updated(e UpdateEvent) {
	o.logger.WithFields(logrus.Fields{
		"route":   e.Route.String(),
		"facets":  e.Facets,
		"pace":    e.Pace,
		"elapsed": e.Elapsed,
	}).Info("route updated")
}

func (o *LoggingObserver) Filtered(e FilterEvent) {
	fields := logrus.Fields{
		"mode":     e.Mode,
		"route":    e.Route.String(),
		"filtered": e.Kept,
		"total":    e.Total,
	}
	if e.Cached {
		fields["elapsed"] = "cached result"
	} else {
		fields["elapsed"] = e.Elapsed
	}
	o.logger.WithFields(fields).Info("facets filtered")
}

func (o *LoggingObserver) Progress(op string, done, total int) {
	if done != total && !o.limiter.Allow() {
		return
	}
	o.logger.WithFields(logrus.Fields{
		"op":    op,
		"done":  done,
		"total": total,
	}).Debug("solving")
}
