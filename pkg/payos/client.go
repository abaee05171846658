package payos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cosplay-booking/pkg/utils"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

const maxDescriptionRunes = 25

// Client talks to the PayOS merchant API.
type Client struct {
	baseURL     string
	clientID    string
	apiKey      string
	checksumKey string
	returnURL   string
	cancelURL   string
	http        *http.Client
}

func NewClient(config utils.PayOSConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		clientID:    config.ClientID,
		apiKey:      config.APIKey,
		checksumKey: config.ChecksumKey,
		returnURL:   config.ReturnURL,
		cancelURL:   config.CancelURL,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

type CheckoutRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type CheckoutResult struct {
	PaymentLinkID string `json:"paymentLinkId"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
	Status        string `json:"status"`
}

type apiResponse struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

// CreatePaymentLink registers an order with the gateway and returns the
// hosted checkout link. Description is cut to the 25 characters the gateway
// accepts.
func (c *Client) CreatePaymentLink(ctx context.Context, orderCode, amount int64, description string) (*CheckoutResult, error) {
	if r := []rune(description); len(r) > maxDescriptionRunes {
		description = string(r[:maxDescriptionRunes])
	}

	req := CheckoutRequest{
		OrderCode:   orderCode,
		Amount:      amount,
		Description: description,
		ReturnURL:   c.returnURL,
		CancelURL:   c.cancelURL,
	}
	req.Signature = Sign(c.checksumKey, checkoutSignatureData(req))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gateway response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || out.Code != "00" {
		return nil, fmt.Errorf("gateway rejected order %d: code=%s desc=%s", orderCode, out.Code, out.Desc)
	}

	var result CheckoutResult
	if err := json.Unmarshal(out.Data, &result); err != nil {
		return nil, fmt.Errorf("decode checkout data: %w", err)
	}

	return &result, nil
}

// WebhookPayload is the envelope the gateway posts on payment events.
type WebhookPayload struct {
	Code      string          `json:"code"`
	Desc      string          `json:"desc"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

type WebhookData struct {
	OrderCode           int64  `json:"orderCode"`
	Amount              int64  `json:"amount"`
	Description         string `json:"description"`
	AccountNumber       string `json:"accountNumber"`
	Reference           string `json:"reference"`
	TransactionDateTime string `json:"transactionDateTime"`
	Currency            string `json:"currency"`
	PaymentLinkID       string `json:"paymentLinkId"`
	Code                string `json:"code"`
	Desc                string `json:"desc"`
}

// VerifyWebhook checks the payload signature and decodes its data.
func (c *Client) VerifyWebhook(payload *WebhookPayload) (*WebhookData, error) {
	return VerifyWebhook(c.checksumKey, payload)
}

func VerifyWebhook(checksumKey string, payload *WebhookPayload) (*WebhookData, error) {
	if payload == nil || len(payload.Data) == 0 || payload.Signature == "" {
		return nil, ErrInvalidSignature
	}

	query, err := sortedQuery(payload.Data)
	if err != nil {
		return nil, err
	}

	if !validSignature(Sign(checksumKey, query), payload.Signature) {
		return nil, ErrInvalidSignature
	}

	var data WebhookData
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return nil, fmt.Errorf("decode webhook data: %w", err)
	}

	return &data, nil
}
