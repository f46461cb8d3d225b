package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/google/uuid"
)

// opportunityService implements the OpportunitySvcFacade interface
type opportunityService struct {
	BaseService
	opportunityRepo portsrepo.OpportunityRepositoryFacade
	applicationRepo portsrepo.ApplicationReader
	auditRepo       portsrepo.AuditRepository
}

// NewOpportunityService creates a new opportunity service with the provided dependencies
func NewOpportunityService(
	opportunityRepo portsrepo.OpportunityRepositoryFacade,
	applicationRepo portsrepo.ApplicationReader,
	auditRepo portsrepo.AuditRepository,
) portssvc.OpportunitySvcFacade {
	return &opportunityService{
		opportunityRepo: opportunityRepo,
		applicationRepo: applicationRepo,
		auditRepo:       auditRepo,
	}
}

// Ensure opportunityService implements the OpportunitySvcFacade interface
var _ portssvc.OpportunitySvcFacade = (*opportunityService)(nil)

// CreateOpportunity drafts a new listing owned by the caller.
func (s *opportunityService) CreateOpportunity(ctx context.Context, publisher domain.Actor, req dto.CreateOpportunityRequest) (*domain.Opportunity, error) {
	if publisher.Role != domain.RolePublisher && !publisher.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	opportunity := domain.Opportunity{
		OpportunityID:       uuid.NewString(),
		PublisherID:         publisher.UserID,
		Category:            req.Category,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		Modality:            req.Modality,
		Location:            req.Location,
		OrganizationName:    req.OrganizationName,
		ExternalURL:         req.ExternalURL,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              domain.OpportunityDraft,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.opportunityRepo.SaveOpportunity(ctx, opportunity); err != nil {
		s.LogError(ctx, err, "Failed to save opportunity",
			slog.String("publisher_id", publisher.UserID))
		return nil, err
	}

	s.recordAudit(ctx, publisher.UserID, domain.AuditActionCreate, opportunity.OpportunityID,
		map[string]any{"title": opportunity.Title, "status": opportunity.Status})

	s.LogInfo(ctx, "Opportunity created",
		slog.String("opportunity_id", opportunity.OpportunityID),
		slog.String("publisher_id", publisher.UserID))
	return &opportunity, nil
}

// GetOpportunity loads one listing, applying the visibility rule and filling
// viewer flags.
func (s *opportunityService) GetOpportunity(ctx context.Context, opportunityID string, viewer *domain.Actor) (*portssvc.OpportunityDetail, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	if opportunity.Status != domain.OpportunityActive {
		// Non-active listings are private to their owner and admins.
		if viewer == nil || (viewer.UserID != opportunity.PublisherID && !viewer.IsAdmin()) {
			return nil, apperrors.ErrNotFound
		}
	}

	detail := &portssvc.OpportunityDetail{Opportunity: *opportunity}
	if viewer == nil || viewer.UserID == opportunity.PublisherID {
		return detail, nil
	}

	if err := s.opportunityRepo.IncrementOpportunityViews(ctx, opportunityID); err != nil {
		// Counter bump is best effort.
		s.LogDebug(ctx, "Failed to bump view counter",
			slog.String("opportunity_id", opportunityID))
	}

	saved, err := s.opportunityRepo.IsOpportunitySaved(ctx, viewer.UserID, opportunityID)
	if err == nil {
		detail.IsSaved = saved
	}

	application, err := s.applicationRepo.FindActiveApplication(ctx, viewer.UserID, opportunityID)
	if err == nil {
		detail.ApplicationStatus = &application.Status
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up viewer application",
			slog.String("opportunity_id", opportunityID))
	}

	return detail, nil
}

func (s *opportunityService) ListActiveOpportunities(ctx context.Context, filter portsrepo.ListOpportunitiesFilter) ([]domain.Opportunity, int, error) {
	opportunities, total, err := s.opportunityRepo.ListActiveOpportunities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active opportunities")
		return nil, 0, err
	}
	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	return opportunities, total, nil
}

func (s *opportunityService) ListFeaturedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	opportunities, err := s.opportunityRepo.ListFeaturedOpportunities(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list featured opportunities")
		return nil, err
	}
	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	return opportunities, nil
}

// ListMyOpportunities returns the caller's own listings plus status counters.
func (s *opportunityService) ListMyOpportunities(ctx context.Context, publisher domain.Actor, status *domain.OpportunityStatus, limit, offset int) (*portssvc.PublisherListing, error) {
	opportunities, total, err := s.opportunityRepo.ListOpportunitiesByPublisher(ctx, publisher.UserID, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list publisher opportunities",
			slog.String("publisher_id", publisher.UserID))
		return nil, err
	}

	counts, err := s.opportunityRepo.CountOpportunitiesByStatus(ctx, publisher.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count publisher opportunities",
			slog.String("publisher_id", publisher.UserID))
		return nil, err
	}

	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	return &portssvc.PublisherListing{
		Opportunities: opportunities,
		Total:         total,
		StatusCounts:  counts,
	}, nil
}

// ListPendingOpportunities is the admin review queue.
func (s *opportunityService) ListPendingOpportunities(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Opportunity, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}
	opportunities, total, err := s.opportunityRepo.ListOpportunitiesByStatus(ctx, domain.OpportunityPending, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending opportunities")
		return nil, 0, err
	}
	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	return opportunities, total, nil
}

// UpdateOpportunity merges descriptive changes into a non-terminal listing.
func (s *opportunityService) UpdateOpportunity(ctx context.Context, opportunityID string, actor domain.Actor, patch domain.OpportunityPatch) (*domain.Opportunity, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opportunity.PublisherID != actor.UserID && !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if opportunity.Status.IsTerminal() {
		return nil, apperrors.NewConflictError(fmt.Sprintf("opportunity in status %s cannot be edited", opportunity.Status))
	}

	patch.Apply(opportunity)
	opportunity.UpdatedAt = time.Now()

	if err := s.opportunityRepo.UpdateOpportunity(ctx, *opportunity); err != nil {
		s.LogError(ctx, err, "Failed to update opportunity",
			slog.String("opportunity_id", opportunityID))
		return nil, err
	}

	action := domain.AuditActionPublisherUpdate
	if actor.IsAdmin() {
		action = domain.AuditActionAdminUpdate
	}
	s.recordAudit(ctx, actor.UserID, action, opportunityID,
		map[string]any{"title": opportunity.Title})

	return opportunity, nil
}

// DuplicateOpportunity clones a listing into a fresh draft for the caller.
func (s *opportunityService) DuplicateOpportunity(ctx context.Context, opportunityID string, actor domain.Actor) (*domain.Opportunity, error) {
	source, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if source.PublisherID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	clone := *source
	clone.OpportunityID = uuid.NewString()
	clone.Title = duplicateTitle(source.Title)
	clone.Status = domain.OpportunityDraft
	clone.RejectionReason = nil
	clone.ReviewedBy = nil
	clone.ReviewedAt = nil
	clone.IsFeatured = false
	clone.ViewsCount = 0
	clone.ApplicationsCount = 0
	clone.CreatedAt = now
	clone.UpdatedAt = now

	if err := s.opportunityRepo.SaveOpportunity(ctx, clone); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated opportunity",
			slog.String("source_id", opportunityID))
		return nil, err
	}

	s.recordAudit(ctx, actor.UserID, domain.AuditActionCreate, clone.OpportunityID,
		map[string]any{"title": clone.Title, "duplicatedFrom": opportunityID})

	return &clone, nil
}

// TransitionOpportunity moves a listing along its lifecycle, writing the
// status, notification and audit entry in one transaction.
func (s *opportunityService) TransitionOpportunity(ctx context.Context, opportunityID string, actor domain.Actor, requested domain.OpportunityStatus, rejectionReason *string) (*domain.Opportunity, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	role := actor.Role
	if !actor.IsAdmin() {
		if opportunity.PublisherID != actor.UserID {
			return nil, apperrors.ErrForbidden
		}
		role = domain.RolePublisher
	}

	if !domain.OpportunityTransitionAllowed(role, opportunity.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s as %s", apperrors.ErrInvalidTransition, opportunity.Status, requested, role)
	}

	now := time.Now()
	update := portsrepo.OpportunityStatusUpdate{
		OpportunityID: opportunityID,
		FromStatus:    opportunity.Status,
		ToStatus:      requested,
		UpdatedAt:     now,
	}

	switch requested {
	case domain.OpportunityRejected:
		if rejectionReason == nil || strings.TrimSpace(*rejectionReason) == "" {
			return nil, apperrors.NewValidationFailedError("rejection requires a reason")
		}
		update.RejectionReason = rejectionReason
	default:
		// Any other move clears a previous rejection.
		update.RejectionReason = nil
	}

	if actor.IsAdmin() && (requested == domain.OpportunityActive || requested == domain.OpportunityRejected) {
		update.ReviewedBy = &actor.UserID
		update.ReviewedAt = &now
	}

	notification := opportunityTransitionNotification(*opportunity, requested, rejectionReason, actor, now)

	action := domain.AuditActionPublisherUpdate
	if actor.IsAdmin() {
		action = domain.AuditActionAdminUpdate
	}
	entry := &domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      actor.UserID,
		Action:       action,
		Entity:       string(domain.KindOpportunity),
		EntityID:     opportunityID,
		NewValues: marshalAuditValues(map[string]any{
			"status":          requested,
			"isFeatured":      opportunity.IsFeatured,
			"previousStatus":  opportunity.Status,
			"rejectionReason": rejectionReason,
		}),
		CreatedAt: now,
	}

	if err := s.opportunityRepo.TransitionOpportunityStatus(ctx, update, notification, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to transition opportunity",
				slog.String("opportunity_id", opportunityID),
				slog.String("to", string(requested)))
		}
		return nil, err
	}

	opportunity.Status = requested
	opportunity.RejectionReason = update.RejectionReason
	opportunity.ReviewedBy = update.ReviewedBy
	opportunity.ReviewedAt = update.ReviewedAt
	opportunity.UpdatedAt = now

	s.LogInfo(ctx, "Opportunity transitioned",
		slog.String("opportunity_id", opportunityID),
		slog.String("from", string(update.FromStatus)),
		slog.String("to", string(requested)))
	return opportunity, nil
}

// ForceSuspendOpportunity takes a listing down outside the normal table. It
// refuses listings already in a terminal status.
func (s *opportunityService) ForceSuspendOpportunity(ctx context.Context, opportunityID, adminID, reason string) error {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opportunity.Status.IsTerminal() {
		return apperrors.NewConflictError(fmt.Sprintf("opportunity already in terminal status %s", opportunity.Status))
	}

	now := time.Now()
	update := portsrepo.OpportunityStatusUpdate{
		OpportunityID:   opportunityID,
		FromStatus:      opportunity.Status,
		ToStatus:        domain.OpportunityRejected,
		RejectionReason: &reason,
		ReviewedBy:      &adminID,
		ReviewedAt:      &now,
		UpdatedAt:       now,
	}

	entry := &domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      adminID,
		Action:       domain.AuditActionForceSuspend,
		Entity:       string(domain.KindOpportunity),
		EntityID:     opportunityID,
		NewValues: marshalAuditValues(map[string]any{
			"status":         domain.OpportunityRejected,
			"previousStatus": opportunity.Status,
			"reason":         reason,
		}),
		CreatedAt: now,
	}

	if err := s.opportunityRepo.TransitionOpportunityStatus(ctx, update, nil, entry); err != nil {
		s.LogError(ctx, err, "Failed to force-suspend opportunity",
			slog.String("opportunity_id", opportunityID))
		return err
	}

	s.LogInfo(ctx, "Opportunity force-suspended",
		slog.String("opportunity_id", opportunityID),
		slog.String("admin_id", adminID))
	return nil
}

// SetOpportunityFeatured toggles the featured flag (admin only).
func (s *opportunityService) SetOpportunityFeatured(ctx context.Context, opportunityID string, actor domain.Actor, featured bool) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if featured && opportunity.Status != domain.OpportunityActive {
		return apperrors.NewValidationFailedError("only active opportunities can be featured")
	}

	if err := s.opportunityRepo.SetOpportunityFeatured(ctx, opportunityID, featured); err != nil {
		s.LogError(ctx, err, "Failed to set featured flag",
			slog.String("opportunity_id", opportunityID))
		return err
	}

	s.recordAudit(ctx, actor.UserID, domain.AuditActionAdminUpdate, opportunityID,
		map[string]any{"isFeatured": featured})
	return nil
}

// DeleteOpportunity removes a listing that never went live.
func (s *opportunityService) DeleteOpportunity(ctx context.Context, opportunityID string, actor domain.Actor) error {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opportunity.PublisherID != actor.UserID && !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if opportunity.Status != domain.OpportunityDraft && opportunity.Status != domain.OpportunityRejected && !actor.IsAdmin() {
		return apperrors.NewConflictError("only draft or rejected opportunities can be deleted")
	}

	if err := s.opportunityRepo.DeleteOpportunity(ctx, opportunityID); err != nil {
		s.LogError(ctx, err, "Failed to delete opportunity",
			slog.String("opportunity_id", opportunityID))
		return err
	}
	return nil
}

func (s *opportunityService) SaveOpportunity(ctx context.Context, userID, opportunityID string) error {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opportunity.Status != domain.OpportunityActive {
		return apperrors.NewValidationFailedError("only active opportunities can be saved")
	}
	return s.opportunityRepo.SaveOpportunityForUser(ctx, userID, opportunityID)
}

func (s *opportunityService) UnsaveOpportunity(ctx context.Context, userID, opportunityID string) error {
	return s.opportunityRepo.RemoveSavedOpportunity(ctx, userID, opportunityID)
}

func (s *opportunityService) ListSavedOpportunities(ctx context.Context, userID string, limit, offset int) ([]domain.Opportunity, int, error) {
	opportunities, total, err := s.opportunityRepo.ListSavedOpportunities(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list saved opportunities",
			slog.String("user_id", userID))
		return nil, 0, err
	}
	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	return opportunities, total, nil
}

// recordAudit appends a standalone audit entry. Failures are logged but do
// not fail the caller's operation.
func (s *opportunityService) recordAudit(ctx context.Context, actorID, action, entityID string, values map[string]any) {
	entry := domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		Entity:       string(domain.KindOpportunity),
		EntityID:     entityID,
		NewValues:    marshalAuditValues(values),
		CreatedAt:    time.Now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("entity_id", entityID),
			slog.String("action", action))
	}
}

// opportunityTransitionNotification builds the publisher notification for a
// review decision. Self-initiated moves emit none.
func opportunityTransitionNotification(o domain.Opportunity, requested domain.OpportunityStatus, rejectionReason *string, actor domain.Actor, now time.Time) *domain.Notification {
	if !actor.IsAdmin() || actor.UserID == o.PublisherID {
		return nil
	}

	link := "/opportunities/" + o.OpportunityID
	switch requested {
	case domain.OpportunityActive:
		return &domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         o.PublisherID,
			Title:          "Publicación aprobada",
			Message:        fmt.Sprintf("Tu publicación \"%s\" ha sido aprobada y ya es visible.", o.Title),
			Category:       domain.NotificationSuccess,
			Link:           &link,
			CreatedAt:      now,
		}
	case domain.OpportunityRejected:
		reason := ""
		if rejectionReason != nil {
			reason = *rejectionReason
		}
		return &domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         o.PublisherID,
			Title:          "Publicación rechazada",
			Message:        fmt.Sprintf("Tu publicación \"%s\" fue rechazada. Motivo: %s", o.Title, reason),
			Category:       domain.NotificationWarning,
			Link:           &link,
			CreatedAt:      now,
		}
	}
	return nil
}

// duplicateTitle appends the copy marker, trimming so the result still fits
// the title limit. The cut lands on a rune boundary so accented titles stay
// valid UTF-8.
func duplicateTitle(title string) string {
	const suffix = " (copia)"
	const maxLen = 200
	if len(title)+len(suffix) > maxLen {
		cut := maxLen - len(suffix)
		for cut > 0 && !utf8.RuneStart(title[cut]) {
			cut--
		}
		title = title[:cut]
	}
	return title + suffix
}
