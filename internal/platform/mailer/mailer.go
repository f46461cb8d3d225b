// Package mailer delivers out-of-band messages to organizations. The current
// implementation only records the delivery; SMTP wiring replaces it when the
// platform gets an outbound mail account.
package mailer

import (
	"context"
	"log/slog"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
)

// LogMailer satisfies the credential provisioning port by logging the
// delivery. The temporary password itself is never written to the log.
type LogMailer struct {
	logger *slog.Logger
}

var _ portssvc.CredentialProvisioner = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// ProvisionCredentials records that credentials were issued for the account.
func (m *LogMailer) ProvisionCredentials(ctx context.Context, account domain.ExternalAccount, tempPassword string) error {
	m.logger.Info("Credentials provisioned for external account",
		slog.String("external_account_id", account.ExternalAccountID),
		slog.String("email", account.Email),
	)
	return nil
}
