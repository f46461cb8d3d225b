package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// CreateExternalAccountRequest is the payload for registering an external
// organization. Admin-created accounts skip the review queue.
type CreateExternalAccountRequest struct {
	OrganizationName   string  `json:"organizationName" binding:"required"`
	RepresentativeName string  `json:"representativeName" binding:"required"`
	Email              string  `json:"email" binding:"required,email"`
	EntityType         string  `json:"entityType" binding:"required,oneof=empresa ong institucion_educativa otro"`
	RUC                *string `json:"ruc,omitempty" binding:"omitempty,len=11"`
	Phone              *string `json:"phone,omitempty"`
	Description        *string `json:"description,omitempty"`
	Website            *string `json:"website,omitempty" binding:"omitempty,url"`
}

// ResolveExternalAccountRequest moves an external account through its
// approval workflow. RejectionReason is required when the target status is
// rechazada.
type ResolveExternalAccountRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

// ExternalAccountResponse is the API shape of an external account.
type ExternalAccountResponse struct {
	ExternalAccountID  string     `json:"externalAccountId"`
	OrganizationName   string     `json:"organizationName"`
	RepresentativeName string     `json:"representativeName"`
	Email              string     `json:"email"`
	EntityType         string     `json:"entityType"`
	RUC                *string    `json:"ruc,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Website            *string    `json:"website,omitempty"`
	Status             string     `json:"status"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	ApprovedBy         *string    `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ListExternalAccountsResponse is a paginated collection of external
// accounts.
type ListExternalAccountsResponse struct {
	Accounts   []ExternalAccountResponse `json:"accounts"`
	Total      int                       `json:"total"`
	Page       int                       `json:"page"`
	TotalPages int                       `json:"totalPages"`
}

// ToExternalAccountResponse maps a domain external account to its API shape.
func ToExternalAccountResponse(a domain.ExternalAccount) ExternalAccountResponse {
	return ExternalAccountResponse{
		ExternalAccountID:  a.ExternalAccountID,
		OrganizationName:   a.OrganizationName,
		RepresentativeName: a.RepresentativeName,
		Email:              a.Email,
		EntityType:         a.EntityType,
		RUC:                a.RUC,
		Phone:              a.Phone,
		Description:        a.Description,
		Website:            a.Website,
		Status:             string(a.Status),
		RejectionReason:    a.RejectionReason,
		ApprovedBy:         a.ApprovedBy,
		ApprovedAt:         a.ApprovedAt,
		CreatedAt:          a.CreatedAt,
	}
}

// ToExternalAccountResponses maps a slice of domain external accounts.
func ToExternalAccountResponses(items []domain.ExternalAccount) []ExternalAccountResponse {
	out := make([]ExternalAccountResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToExternalAccountResponse(a))
	}
	return out
}
