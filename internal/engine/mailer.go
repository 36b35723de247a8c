package engine

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/logging"
)

// ResetMailer is the delivery boundary for reset codes. The engine only
// produces (recipient, display name, code); an external collaborator owns
// the actual transport and reports plain success or failure.
type ResetMailer interface {
	SendResetCode(ctx context.Context, recipientEmail, displayName, code string) error
}

// LogMailer is a ResetMailer for development and tests: it logs that a code
// was produced without delivering (or printing) it.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendResetCode(ctx context.Context, recipientEmail, displayName, _ string) error {
	m.log.Info(ctx, "reset code issued", "recipient", recipientEmail, "user", displayName)
	return nil
}
