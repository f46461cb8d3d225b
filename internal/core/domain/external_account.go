package domain

import "time"

// ExternalAccountStatus is the onboarding state of an organization's
// platform-access request.
type ExternalAccountStatus string

const (
	ExternalAccountPending   ExternalAccountStatus = "pendiente"
	ExternalAccountApproved  ExternalAccountStatus = "aprobada"
	ExternalAccountRejected  ExternalAccountStatus = "rechazada"
	ExternalAccountSuspended ExternalAccountStatus = "suspendida"
)

// ExternalAccount is an organization's request for publisher access,
// distinct from individual user accounts. Email is unique across accounts.
type ExternalAccount struct {
	ExternalAccountID  string                `json:"externalAccountID"`
	OrganizationName   string                `json:"organizationName"`
	RUC                *string               `json:"ruc"`
	RepresentativeName string                `json:"representativeName"`
	Email              string                `json:"email"`
	Phone              *string               `json:"phone"`
	EntityType         string                `json:"entityType"`
	Description        *string               `json:"description"`
	Website            *string               `json:"website"`
	Status             ExternalAccountStatus `json:"status"`
	ApprovedBy         *string               `json:"approvedBy"`
	ApprovedAt         *time.Time            `json:"approvedAt"`
	RejectionReason    *string               `json:"rejectionReason"`
	CreatedAt          time.Time             `json:"createdAt"`
}
