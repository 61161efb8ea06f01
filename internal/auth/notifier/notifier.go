// Package notifier delivers security emails. The production sender lives in
// the mail service; this logging implementation keeps the contract honest
// for local runs and tests, where delivery is a log line.
package notifier

import (
	"context"
	"log/slog"
	"time"
)

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: slog.Default().With("component", "notifier")}
}

func (n *LogNotifier) SendAccountLockedEmail(_ context.Context, email string, until time.Time, reason string) error {
	n.log.Info("account locked email", "to", email, "until", until, "reason", reason)
	return nil
}

func (n *LogNotifier) SendAccountUnlockedEmail(_ context.Context, email string) error {
	n.log.Info("account unlocked email", "to", email)
	return nil
}

func (n *LogNotifier) SendForcedPasswordResetEmail(_ context.Context, email, reason string) error {
	n.log.Info("forced password reset email", "to", email, "reason", reason)
	return nil
}
