package domain

// EntityKind identifies which workflow a transition table belongs to.
type EntityKind string

const (
	KindOpportunity     EntityKind = "opportunities"
	KindApplication     EntityKind = "applications"
	KindReport          EntityKind = "reports"
	KindExternalAccount EntityKind = "external_accounts"
)

type tableKey struct {
	kind EntityKind
	role Role
}

// transitionTables holds the allowed edges per (entity kind, actor role).
// The absence of an edge means the transition is forbidden. The Opportunity
// tables differ between publisher and admin at `pending`: the publisher may
// only pull the posting back to draft, while the admin decides the review.
var transitionTables = map[tableKey]map[string][]string{
	{KindOpportunity, RolePublisher}: {
		string(OpportunityDraft):    {string(OpportunityPending)},
		string(OpportunityPending):  {string(OpportunityDraft)},
		string(OpportunityActive):   {string(OpportunityPaused), string(OpportunityFinished)},
		string(OpportunityPaused):   {string(OpportunityActive), string(OpportunityFinished)},
		string(OpportunityRejected): {string(OpportunityDraft)},
		string(OpportunityFinished): {},
	},
	{KindOpportunity, RoleAdmin}: {
		string(OpportunityDraft):    {string(OpportunityPending)},
		string(OpportunityPending):  {string(OpportunityActive), string(OpportunityRejected)},
		string(OpportunityActive):   {string(OpportunityPaused), string(OpportunityFinished)},
		string(OpportunityPaused):   {string(OpportunityActive), string(OpportunityFinished)},
		string(OpportunityRejected): {string(OpportunityDraft)},
		string(OpportunityFinished): {},
	},
	{KindApplication, RolePublisher}: applicationEdges,
	{KindApplication, RoleAdmin}:     applicationEdges,
	{KindReport, RoleAdmin}: {
		string(ReportPending): {string(ReportReviewed), string(ReportActionTaken), string(ReportDismissed)},
	},
	{KindExternalAccount, RoleAdmin}: {
		string(ExternalAccountPending):  {string(ExternalAccountApproved), string(ExternalAccountRejected)},
		string(ExternalAccountApproved): {string(ExternalAccountSuspended)},
	},
}

// applicationEdges is shared by publisher and admin; ownership is enforced by
// the workflow, not the table. Withdrawal is not an edge here: it is a
// distinct applicant-initiated action (see CanWithdraw).
var applicationEdges = map[string][]string{
	string(ApplicationPending):     {string(ApplicationInReview), string(ApplicationRejected)},
	string(ApplicationInReview):    {string(ApplicationShortlisted), string(ApplicationRejected)},
	string(ApplicationShortlisted): {string(ApplicationAccepted), string(ApplicationRejected)},
}

// CanTransition reports whether the (current → requested) edge exists in the
// table for the given entity kind and actor role. Unknown kinds, roles, or
// states yield false; it never panics.
func CanTransition(kind EntityKind, role Role, current, requested string) bool {
	edges, ok := transitionTables[tableKey{kind: kind, role: role}]
	if !ok {
		return false
	}
	for _, next := range edges[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// OpportunityTransitionAllowed checks an Opportunity edge for the actor role.
func OpportunityTransitionAllowed(role Role, current, requested OpportunityStatus) bool {
	return CanTransition(KindOpportunity, role, string(current), string(requested))
}

// ApplicationTransitionAllowed checks an Application review edge for the
// actor role.
func ApplicationTransitionAllowed(role Role, current, requested ApplicationStatus) bool {
	return CanTransition(KindApplication, role, string(current), string(requested))
}

// ReportTransitionAllowed checks a Report triage edge for the actor role.
func ReportTransitionAllowed(role Role, current, requested ReportStatus) bool {
	return CanTransition(KindReport, role, string(current), string(requested))
}

// ExternalAccountTransitionAllowed checks an onboarding edge for the actor role.
func ExternalAccountTransitionAllowed(role Role, current, requested ExternalAccountStatus) bool {
	return CanTransition(KindExternalAccount, role, string(current), string(requested))
}

// CanWithdraw reports whether the applicant may still withdraw an application
// in the given state. Withdrawal is permitted only before a review decision.
func CanWithdraw(current ApplicationStatus) bool {
	return current == ApplicationPending || current == ApplicationInReview
}
