package reminder

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// Notifier receives threshold reports whose results changed since the last
// check.
type Notifier interface {
	NotifyThresholds(ctx context.Context, report *study.ThresholdReport) error
}

// LogNotifier writes threshold reports to a logger. It is the default
// notifier when the host has not wired a delivery channel.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
// If logger is nil, a default logger will be used.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With(slog.String("component", "log_notifier"))}
}

// NotifyThresholds implements Notifier.
func (n *LogNotifier) NotifyThresholds(ctx context.Context, report *study.ThresholdReport) error {
	keys := make([]int, 0, len(report.Reached))
	for t := range report.Reached {
		keys = append(keys, t)
	}
	sort.Ints(keys)

	attrs := []any{
		slog.Int("due_now", report.DueNow),
		slog.Time("checked_at", report.CheckedAt),
	}
	if report.NextDueAt != nil {
		attrs = append(attrs, slog.Time("next_due_at", *report.NextDueAt))
	}
	for _, t := range keys {
		attrs = append(attrs, slog.Bool(thresholdKey(t), report.Reached[t]))
	}

	n.logger.InfoContext(ctx, "reminder thresholds changed", attrs...)
	return nil
}
