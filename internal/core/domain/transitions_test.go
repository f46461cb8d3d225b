package domain_test

import (
	"fmt"
	"testing"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

// edge is an allowed (from → to) pair for one role.
type edge struct {
	role domain.Role
	from string
	to   string
}

var opportunityStates = []string{
	string(domain.OpportunityDraft),
	string(domain.OpportunityPending),
	string(domain.OpportunityActive),
	string(domain.OpportunityPaused),
	string(domain.OpportunityFinished),
	string(domain.OpportunityRejected),
}

var applicationStates = []string{
	string(domain.ApplicationPending),
	string(domain.ApplicationInReview),
	string(domain.ApplicationShortlisted),
	string(domain.ApplicationAccepted),
	string(domain.ApplicationRejected),
	string(domain.ApplicationWithdrawn),
}

var reportStates = []string{
	string(domain.ReportPending),
	string(domain.ReportReviewed),
	string(domain.ReportActionTaken),
	string(domain.ReportDismissed),
}

var externalAccountStates = []string{
	string(domain.ExternalAccountPending),
	string(domain.ExternalAccountApproved),
	string(domain.ExternalAccountRejected),
	string(domain.ExternalAccountSuspended),
}

var allRoles = []domain.Role{domain.RoleUser, domain.RolePublisher, domain.RoleAdmin}

// exhaustively checks every (role, from, to) triple for a kind against the
// explicit allow set: listed pairs must pass, everything else must fail.
func checkTable(t *testing.T, kind domain.EntityKind, states []string, allowed []edge) {
	t.Helper()

	allowSet := make(map[edge]bool, len(allowed))
	for _, e := range allowed {
		allowSet[e] = true
	}

	for _, role := range allRoles {
		for _, from := range states {
			for _, to := range states {
				e := edge{role: role, from: from, to: to}
				got := domain.CanTransition(kind, role, from, to)
				assert.Equal(t, allowSet[e], got,
					fmt.Sprintf("%s: role=%s %s->%s", kind, role, from, to))
			}
		}
	}
}

func TestCanTransition_Opportunity(t *testing.T) {
	allowed := []edge{
		{domain.RolePublisher, "draft", "pending"},
		{domain.RolePublisher, "pending", "draft"},
		{domain.RolePublisher, "active", "paused"},
		{domain.RolePublisher, "active", "finished"},
		{domain.RolePublisher, "paused", "active"},
		{domain.RolePublisher, "paused", "finished"},
		{domain.RolePublisher, "rejected", "draft"},

		{domain.RoleAdmin, "draft", "pending"},
		{domain.RoleAdmin, "pending", "active"},
		{domain.RoleAdmin, "pending", "rejected"},
		{domain.RoleAdmin, "active", "paused"},
		{domain.RoleAdmin, "active", "finished"},
		{domain.RoleAdmin, "paused", "active"},
		{domain.RoleAdmin, "paused", "finished"},
		{domain.RoleAdmin, "rejected", "draft"},
	}
	checkTable(t, domain.KindOpportunity, opportunityStates, allowed)
}

func TestCanTransition_Application(t *testing.T) {
	var allowed []edge
	for _, role := range []domain.Role{domain.RolePublisher, domain.RoleAdmin} {
		allowed = append(allowed,
			edge{role, "pendiente", "en_revision"},
			edge{role, "pendiente", "rechazado"},
			edge{role, "en_revision", "preseleccionado"},
			edge{role, "en_revision", "rechazado"},
			edge{role, "preseleccionado", "aceptado"},
			edge{role, "preseleccionado", "rechazado"},
		)
	}
	checkTable(t, domain.KindApplication, applicationStates, allowed)
}

func TestCanTransition_Report(t *testing.T) {
	allowed := []edge{
		{domain.RoleAdmin, "pendiente", "revisado"},
		{domain.RoleAdmin, "pendiente", "accion_tomada"},
		{domain.RoleAdmin, "pendiente", "descartado"},
	}
	checkTable(t, domain.KindReport, reportStates, allowed)
}

func TestCanTransition_ExternalAccount(t *testing.T) {
	allowed := []edge{
		{domain.RoleAdmin, "pendiente", "aprobada"},
		{domain.RoleAdmin, "pendiente", "rechazada"},
		{domain.RoleAdmin, "aprobada", "suspendida"},
	}
	checkTable(t, domain.KindExternalAccount, externalAccountStates, allowed)
}

func TestCanTransition_UnknownInputs(t *testing.T) {
	assert.False(t, domain.CanTransition("widgets", domain.RoleAdmin, "pending", "active"))
	assert.False(t, domain.CanTransition(domain.KindOpportunity, "superadmin", "pending", "active"))
	assert.False(t, domain.CanTransition(domain.KindOpportunity, domain.RoleAdmin, "nonsense", "active"))
	assert.False(t, domain.CanTransition(domain.KindOpportunity, domain.RoleAdmin, "pending", "nonsense"))
}

func TestCanWithdraw(t *testing.T) {
	tests := []struct {
		status domain.ApplicationStatus
		want   bool
	}{
		{domain.ApplicationPending, true},
		{domain.ApplicationInReview, true},
		{domain.ApplicationShortlisted, false},
		{domain.ApplicationAccepted, false},
		{domain.ApplicationRejected, false},
		{domain.ApplicationWithdrawn, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanWithdraw(tt.status))
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, domain.OpportunityFinished.IsTerminal())
	assert.True(t, domain.OpportunityRejected.IsTerminal())
	assert.False(t, domain.OpportunityPaused.IsTerminal())

	assert.True(t, domain.ApplicationAccepted.IsTerminal())
	assert.True(t, domain.ApplicationRejected.IsTerminal())
	assert.True(t, domain.ApplicationWithdrawn.IsTerminal())
	assert.False(t, domain.ApplicationInReview.IsTerminal())

	assert.True(t, domain.ReportReviewed.IsTerminal())
	assert.True(t, domain.ReportActionTaken.IsTerminal())
	assert.True(t, domain.ReportDismissed.IsTerminal())
	assert.False(t, domain.ReportPending.IsTerminal())
}
