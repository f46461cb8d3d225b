package pgsql

import (
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OpportunityRepo:     newPgxOpportunityRepository(dbPool),
		ApplicationRepo:     newPgxApplicationRepository(dbPool),
		ReportRepo:          newPgxReportRepository(dbPool),
		ExternalAccountRepo: newPgxExternalAccountRepository(dbPool),
		NotificationRepo:    newPgxNotificationRepository(dbPool),
		AuditRepo:           newPgxAuditRepository(dbPool),
		UserRepo:            newPgxUserRepository(dbPool),
	}
}
