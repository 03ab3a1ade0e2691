// internal/domain/payment/service.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/jewelry-storefront/internal/config"
)

// Order statuses reported by the PayPal Orders API
const (
	StatusCreated   = "CREATED"
	StatusApproved  = "APPROVED"
	StatusCompleted = "COMPLETED"
	StatusVoided    = "VOIDED"
)

// Service handles payment capture against the PayPal Orders API. Every
// attempt creates a fresh provider order so a retried payment can never
// present a stale cached amount.
type Service struct {
	config     *config.Config
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewService creates a new payment service
func NewService(cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		config:   cfg,
		baseURL:  cfg.External.PayPal.BaseURL,
		clientID: cfg.External.PayPal.ClientID,
		secret:   cfg.External.PayPal.Secret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Order represents a provider-side payment order
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []Link `json:"links,omitempty"`
}

// Link is a HATEOAS link returned by the provider
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// CaptureResult is the outcome of a capture attempt
type CaptureResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

// CreateOrder creates a provider order for the given amount. The amount must
// be the freshest displayed grand total, already formatted as a fixed
// two-decimal string; this service never recomputes or caches it.
func (s *Service) CreateOrder(ctx context.Context, amountValue string) (*Order, error) {
	if amountValue == "" {
		return nil, fmt.Errorf("payment amount is required")
	}

	req := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{Amount: amount{CurrencyCode: s.config.External.PayPal.Currency, Value: amountValue}},
		},
	}

	body, err := s.makeAPICall(ctx, http.MethodPost, "/v2/checkout/orders", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse payment order response: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"amount":   amountValue,
	}).Info("Payment order created")

	return &order, nil
}

// CaptureOrder captures an approved provider order
func (s *Service) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID is required")
	}

	body, err := s.makeAPICall(ctx, http.MethodPost, fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to capture payment: %w", err)
	}

	var result CaptureResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse capture response: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": result.ID,
		"status":   result.Status,
	}).Info("Payment capture attempted")

	return &result, nil
}

// makeAPICall makes HTTP calls to the payment provider API
func (s *Service) makeAPICall(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	var reqBody []byte
	var err error

	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.clientID, s.secret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API call failed with status %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}
