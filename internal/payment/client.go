package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cryptoquote/internal/domain"
)

type Client struct {
	http      *http.Client
	baseURL   string
	secretKey string
}

func NewClient(httpClient *http.Client, baseURL, secretKey string) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/"), secretKey: secretKey}
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeBody struct {
	Email     string   `json:"email"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	Reference string   `json:"reference"`
	Metadata  Metadata `json:"metadata"`
}

type verifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	GatewayResponse string `json:"gateway_response"`
}

// Initialize creates a hosted checkout for req and returns where to send the buyer.
func (c *Client) Initialize(ctx context.Context, req Request) (Checkout, error) {
	payload, err := json.Marshal(initializeBody{
		Email:     req.Email,
		Amount:    req.AmountMinor,
		Currency:  req.Currency,
		Reference: req.Reference,
		Metadata:  req.Metadata,
	})
	if err != nil {
		return Checkout{}, fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	var body envelope[Checkout]
	if err = c.do(ctx, http.MethodPost, "/transaction/initialize", payload, &body); err != nil {
		return Checkout{}, fmt.Errorf("initialize %q: %w", req.Reference, err)
	}
	if body.Data.Reference == "" {
		body.Data.Reference = req.Reference
	}
	return body.Data, nil
}

// Verify reports how the transaction behind reference ended, or that it is still pending.
func (c *Client) Verify(ctx context.Context, reference string) (Outcome, error) {
	var body envelope[verifyData]
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &body); err != nil {
		return Outcome{}, fmt.Errorf("verify %q: %w", reference, err)
	}
	return Outcome{
		Reference:   reference,
		Status:      statusFromProvider(body.Data.Status),
		AmountMinor: body.Data.Amount,
		Currency:    body.Data.Currency,
		Message:     body.Data.GatewayResponse,
	}, nil
}

type statusEnvelope interface {
	ok() (bool, string)
}

func (e *envelope[T]) ok() (bool, string) { return e.Status, e.Message }

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out statusEnvelope) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrReferenceNotFound
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: unexpected status code %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", domain.ErrUpstreamMalformed, err)
	}
	if ok, msg := out.ok(); !ok || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return nil
}
