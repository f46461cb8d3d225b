package dto

// ModerationRequest is the uniform payload of the workflow command endpoint.
// Fields beyond action and targetId apply only where the action uses them.
type ModerationRequest struct {
	Action      string  `json:"action" binding:"required,oneof=opportunity.transition opportunity.suspend application.transition application.withdraw report.resolve external_account.resolve"`
	TargetID    string  `json:"targetId" binding:"required"`
	Status      string  `json:"status,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Enforcement string  `json:"enforcement,omitempty" binding:"omitempty,oneof=suspend none"`
}

// ModerationResponse mirrors the uniform outcome of a workflow command.
type ModerationResponse struct {
	OK        bool   `json:"ok"`
	ErrorKind string `json:"errorKind,omitempty"`
	Message   string `json:"message,omitempty"`
}
