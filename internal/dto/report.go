package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// CreateReportRequest is the payload for flagging an opportunity.
type CreateReportRequest struct {
	OpportunityID string  `json:"opportunityId" binding:"required"`
	Reason        string  `json:"reason" binding:"required,oneof=spam contenido_inapropiado informacion_falsa oferta_vencida otro"`
	Comment       *string `json:"comment,omitempty" binding:"omitempty,max=1000"`
}

// ResolveReportRequest closes out a report. Action asks for enforcement
// against the reported opportunity and only takes effect when the target
// status is accion_tomada.
type ResolveReportRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	Action     string  `json:"action,omitempty" binding:"omitempty,oneof=suspend none"`
}

// ReportResponse is the API shape of a report.
type ReportResponse struct {
	ReportID      string     `json:"reportId"`
	ReporterID    string     `json:"reporterId"`
	OpportunityID string     `json:"opportunityId"`
	Reason        string     `json:"reason"`
	Comment       *string    `json:"comment,omitempty"`
	Status        string     `json:"status"`
	AdminNotes    *string    `json:"adminNotes,omitempty"`
	ResolvedBy    *string    `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ReportDetailResponse pairs a report with other reports filed against the
// same opportunity.
type ReportDetailResponse struct {
	Report         ReportResponse   `json:"report"`
	RelatedReports []ReportResponse `json:"relatedReports"`
}

// ListReportsResponse is a paginated collection of reports.
type ListReportsResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// ToReportResponse maps a domain report to its API shape.
func ToReportResponse(r domain.Report) ReportResponse {
	return ReportResponse{
		ReportID:      r.ReportID,
		ReporterID:    r.ReporterID,
		OpportunityID: r.OpportunityID,
		Reason:        string(r.Reason),
		Comment:       r.Comment,
		Status:        string(r.Status),
		AdminNotes:    r.AdminNotes,
		ResolvedBy:    r.ResolvedBy,
		ResolvedAt:    r.ResolvedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// ToReportResponses maps a slice of domain reports.
func ToReportResponses(items []domain.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToReportResponse(r))
	}
	return out
}
