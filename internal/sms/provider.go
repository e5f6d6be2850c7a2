// Package sms is the outbound OTP dispatch boundary.
package sms

import (
	"context"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
)

// Provider delivers a one-time code to a phone number. Failures surface
// synchronously to the caller; there is no retry here.
type Provider interface {
	Send(ctx context.Context, phone, code string) error
}

// DisabledProvider is used when SMS dispatch is switched off in config.
// It logs the code so local flows stay testable end to end.
type DisabledProvider struct{}

func (DisabledProvider) Send(ctx context.Context, phone, code string) error {
	logger.CtxInfo(ctx, "sms disabled, otp not dispatched", "phone", phone, "otp", code)
	return nil
}
