// Package report delivers a finished batch report to destinations other than the console.
package report

import (
	"context"

	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
)

type Sink interface {
	Publish(ctx context.Context, report *solution.Report) error
	String() string
}

// PublishAll hands the report to every sink. A failing sink is logged and does not
// stop the others; the number of failed sinks is returned.
func PublishAll(ctx context.Context, report *solution.Report, sinks ...Sink) int {
	logger := logger.NewNamedLogger("report")

	failed := 0
	for _, sink := range sinks {
		if err := sink.Publish(ctx, report); err != nil {
			logger.Errorf("Failed to publish report to %s: %s [RunID: %s]", sink, err, report.RunID)
			failed++
			continue
		}
		logger.Infof("Published report to %s [RunID: %s]", sink, report.RunID)
	}
	return failed
}
