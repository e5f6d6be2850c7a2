package dto

// RejectRequest carries the mandatory reason for a rejection decision.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}
