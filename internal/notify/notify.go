// Package notify defines the outbound notification collaborator. The engine
// only ever calls the interface; delivery (toasts, realtime channels) is the
// hosting application's concern.
package notify

import (
	"context"
	"log/slog"
)

// Event is a user-facing outcome event.
type Event struct {
	Kind        string `json:"kind"`
	RecipientID string `json:"recipient_id,omitempty"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// Notifier delivers events to interested users. Implementations must not
// block the calling operation; failures are the notifier's to handle.
type Notifier interface {
	Notify(ctx context.Context, tenantID string, event Event)
}

// LogNotifier writes events to the structured log. Used as the default
// collaborator when no realtime channel is wired in.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, tenantID string, event Event) {
	n.logger.Info("notification",
		"tenant", tenantID,
		"kind", event.Kind,
		"recipient", event.RecipientID,
		"subject", event.Subject,
		"message", event.Message,
	)
}
