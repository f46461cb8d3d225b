package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
)

// moderationService routes workflow commands to the entity services and
// folds their errors into the uniform result shape.
type moderationService struct {
	BaseService
	opportunitySvc     portssvc.OpportunitySvcFacade
	applicationSvc     portssvc.ApplicationSvcFacade
	reportSvc          portssvc.ReportSvcFacade
	externalAccountSvc portssvc.ExternalAccountSvcFacade
}

// NewModerationService creates a new moderation facade over the entity services
func NewModerationService(
	opportunitySvc portssvc.OpportunitySvcFacade,
	applicationSvc portssvc.ApplicationSvcFacade,
	reportSvc portssvc.ReportSvcFacade,
	externalAccountSvc portssvc.ExternalAccountSvcFacade,
) portssvc.ModerationSvcFacade {
	return &moderationService{
		opportunitySvc:     opportunitySvc,
		applicationSvc:     applicationSvc,
		reportSvc:          reportSvc,
		externalAccountSvc: externalAccountSvc,
	}
}

// Ensure moderationService implements the ModerationSvcFacade interface
var _ portssvc.ModerationSvcFacade = (*moderationService)(nil)

func (s *moderationService) Moderate(ctx context.Context, cmd portssvc.ModerationCommand) portssvc.ModerationResult {
	var err error

	switch cmd.Action {
	case portssvc.ModerateOpportunityTransition:
		_, err = s.opportunitySvc.TransitionOpportunity(ctx, cmd.TargetID, cmd.Actor, domain.OpportunityStatus(cmd.Status), cmd.Reason)
	case portssvc.ModerateOpportunitySuspend:
		if !cmd.Actor.IsAdmin() {
			err = apperrors.ErrForbidden
			break
		}
		reason := forcedSuspensionReason
		if cmd.Reason != nil {
			reason = *cmd.Reason
		}
		err = s.opportunitySvc.ForceSuspendOpportunity(ctx, cmd.TargetID, cmd.Actor.UserID, reason)
	case portssvc.ModerateApplicationTransition:
		_, err = s.applicationSvc.TransitionApplication(ctx, cmd.TargetID, cmd.Actor, domain.ApplicationStatus(cmd.Status), cmd.Notes)
	case portssvc.ModerateApplicationWithdraw:
		err = s.applicationSvc.WithdrawApplication(ctx, cmd.TargetID, cmd.Actor.UserID)
	case portssvc.ModerateReportResolve:
		action := cmd.Enforcement
		if action == "" {
			action = domain.ActionNone
		}
		_, err = s.reportSvc.ResolveReport(ctx, cmd.TargetID, cmd.Actor, domain.ReportStatus(cmd.Status), cmd.Notes, action)
	case portssvc.ModerateExternalAccountResolution:
		_, err = s.externalAccountSvc.ResolveExternalAccount(ctx, cmd.TargetID, cmd.Actor, domain.ExternalAccountStatus(cmd.Status), cmd.Reason)
	default:
		err = apperrors.NewValidationFailedError(fmt.Sprintf("unknown moderation action %q", cmd.Action))
	}

	if err != nil {
		kind, message := classifyModerationError(err)
		return portssvc.ModerationResult{OK: false, ErrorKind: kind, Message: message}
	}
	return portssvc.ModerationResult{OK: true}
}

// classifyModerationError names the failure class and picks a caller-safe
// message.
func classifyModerationError(err error) (string, string) {
	var kind string
	switch {
	case errors.Is(err, apperrors.ErrInvalidTransition):
		kind = "invalid_transition"
	case errors.Is(err, apperrors.ErrNotFound):
		kind = "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		kind = "forbidden"
	case errors.Is(err, apperrors.ErrValidation):
		kind = "validation"
	case errors.Is(err, apperrors.ErrDuplicate):
		kind = "duplicate"
	case errors.Is(err, apperrors.ErrConflict):
		kind = "conflict"
	default:
		// Internal details stay out of the result.
		return "internal", "internal error"
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return kind, appErr.Message
	}
	return kind, err.Error()
}
