package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ModerationAction names a workflow operation routed through the facade.
type ModerationAction string

const (
	ModerateOpportunityTransition     ModerationAction = "opportunity.transition"
	ModerateOpportunitySuspend        ModerationAction = "opportunity.suspend"
	ModerateApplicationTransition     ModerationAction = "application.transition"
	ModerateApplicationWithdraw       ModerationAction = "application.withdraw"
	ModerateReportResolve             ModerationAction = "report.resolve"
	ModerateExternalAccountResolution ModerationAction = "external_account.resolve"
)

// ModerationCommand is the uniform input of the moderation facade. Fields
// beyond Actor, Action and TargetID apply only where the action uses them.
type ModerationCommand struct {
	Actor    domain.Actor
	Action   ModerationAction
	TargetID string
	// Status is the requested target status, in the entity's own
	// vocabulary.
	Status string
	// Reason carries a rejection or suspension reason.
	Reason *string
	// Notes carries publisher or admin notes.
	Notes *string
	// Enforcement selects the follow-up action for report resolution.
	Enforcement domain.ReportAction
}

// ModerationResult is the uniform outcome shape. OK means the command was
// applied; otherwise ErrorKind names the failure class and Message is safe
// to show the caller.
type ModerationResult struct {
	OK        bool   `json:"ok"`
	ErrorKind string `json:"errorKind,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ModerationSvcFacade dispatches workflow commands to the entity services
// and folds their errors into ModerationResult.
type ModerationSvcFacade interface {
	Moderate(ctx context.Context, cmd ModerationCommand) ModerationResult
}
