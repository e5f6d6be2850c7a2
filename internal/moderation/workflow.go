// Package moderation implements the submission review workflow shared by
// properties, agents and consultants: a submission starts pending and an
// administrator may flip it between approved and rejected at any time.
package moderation

import (
	"strings"
	"time"

	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Review holds the workflow state embedded into every moderatable model.
type Review struct {
	Status         Status     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	RejectedReason string     `gorm:"default:''" json:"rejectedReason"`
	ReviewedBy     string     `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
}

// Actor is the authenticated identity performing a workflow action.
type Actor struct {
	ID    string
	Admin bool
}

// CanModerate allows approve/reject for administrators only.
func (a Actor) CanModerate() error {
	if !a.Admin {
		return apperrors.ErrModerationForbidden
	}
	return nil
}

// CanMutate allows content edits and deletion for the owner or an
// administrator.
func (a Actor) CanMutate(ownerID string) error {
	if a.Admin || (a.ID != "" && a.ID == ownerID) {
		return nil
	}
	return apperrors.ErrNotAuthorized
}

// Approve moves the submission to approved and clears any prior rejection
// reason. Approving an already approved submission is an idempotent
// overwrite.
func Approve(r *Review, actor Actor) error {
	if err := actor.CanModerate(); err != nil {
		return err
	}
	now := time.Now()
	r.Status = StatusApproved
	r.RejectedReason = ""
	r.ReviewedBy = actor.ID
	r.ReviewedAt = &now
	return nil
}

// Reject moves the submission to rejected. A blank reason is a validation
// error; the stored reason is trimmed.
func Reject(r *Review, actor Actor, reason string) error {
	if err := actor.CanModerate(); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.ErrRejectionReasonRequired
	}
	now := time.Now()
	r.Status = StatusRejected
	r.RejectedReason = reason
	r.ReviewedBy = actor.ID
	r.ReviewedAt = &now
	return nil
}
