package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/logger"
)

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMSProvider dispatches OTP codes over the Fast2SMS DLT route.
type Fast2SMSProvider struct {
	apiKey     string
	senderID   string
	entityID   string
	templateID string
	httpClient *http.Client
}

func NewFast2SMSProvider(cfg *config.Config) *Fast2SMSProvider {
	return &Fast2SMSProvider{
		apiKey:     cfg.SMS.APIKey,
		senderID:   cfg.SMS.SenderID,
		entityID:   cfg.SMS.EntityID,
		templateID: cfg.SMS.TemplateID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type fast2smsRequest struct {
	Route           string `json:"route"`
	SenderID        string `json:"sender_id"`
	Message         string `json:"message"`
	VariablesValues string `json:"variables_values"`
	Numbers         string `json:"numbers"`
	EntityID        string `json:"entity_id"`
}

type fast2smsResponse struct {
	Return  bool   `json:"return"`
	Message string `json:"message"`
}

func (p *Fast2SMSProvider) Send(ctx context.Context, phone, code string) error {
	payload := fast2smsRequest{
		Route:           "dlt",
		SenderID:        p.senderID,
		Message:         p.templateID,
		VariablesValues: code,
		Numbers:         phone,
		EntityID:        p.entityID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sms: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fast2smsURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: dispatch: %w", err)
	}
	defer res.Body.Close()

	var parsed fast2smsResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("sms: decode response: %w", err)
	}
	if !parsed.Return {
		logger.CtxWarn(ctx, "sms gateway rejected dispatch", "phone", phone, "gateway_message", parsed.Message)
		return fmt.Errorf("sms: gateway rejected dispatch: %s", parsed.Message)
	}

	return nil
}
