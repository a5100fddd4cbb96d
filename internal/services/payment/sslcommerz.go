package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nibash_backend/internal/config"
)

const (
	sandboxSessionURL    = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL       = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
	sandboxValidationURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	liveValidationURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"
)

// Client talks to the SSLCommerz v4 gateway: session creation is a
// form-encoded POST, transaction validation a GET against the validator API.
type Client struct {
	StoreID       string
	StorePassword string
	Sandbox       bool

	sessionURL    string
	validationURL string
	httpClient    *http.Client
}

// SessionRequest is the outbound payment session.
type SessionRequest struct {
	Amount      float64
	Currency    string
	TranID      string
	ProductName string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
}

// SessionResponse is the gateway's reply to session creation.
type SessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// ValidationResponse is the validator API's view of a transaction.
type ValidationResponse struct {
	Status   string `json:"status"` // VALID | VALIDATED | INVALID_TRANSACTION
	TranID   string `json:"tran_id"`
	ValID    string `json:"val_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewClient(cfg *config.Config) *Client {
	c := &Client{
		StoreID:       cfg.SSLCommerz.StoreID,
		StorePassword: cfg.SSLCommerz.StorePassword,
		Sandbox:       cfg.SSLCommerz.Sandbox,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
	if c.Sandbox {
		c.sessionURL = sandboxSessionURL
		c.validationURL = sandboxValidationURL
	} else {
		c.sessionURL = liveSessionURL
		c.validationURL = liveValidationURL
	}
	return c
}

// CreateSession registers the payment with the gateway and returns the
// redirect URL the customer must be sent to.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.StoreID)
	form.Set("store_passwd", c.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TranID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)

	form.Set("cus_name", defaultString(req.CustomerName, "Customer"))
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", defaultString(req.CustomerPhone, "01700000000"))
	form.Set("cus_add1", defaultString(req.CustomerAddress, "Dhaka, Bangladesh"))
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_postcode", "1000")

	form.Set("product_name", defaultString(req.ProductName, "Nibash Service"))
	form.Set("product_category", "Home Service")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", "1")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz session request: %w", err)
	}
	defer resp.Body.Close()

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("sslcommerz session decode: %w", err)
	}

	if session.Status != "SUCCESS" {
		reason := session.FailedReason
		if reason == "" {
			reason = "session creation rejected"
		}
		return nil, fmt.Errorf("sslcommerz: %s", reason)
	}

	return &session, nil
}

// ValidateTransaction re-checks an IPN against the validator API by val_id.
func (c *Client) ValidateTransaction(ctx context.Context, valID string) (*ValidationResponse, error) {
	query := url.Values{}
	query.Set("val_id", valID)
	query.Set("store_id", c.StoreID)
	query.Set("store_passwd", c.StorePassword)
	query.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.validationURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz validation request: %w", err)
	}
	defer resp.Body.Close()

	var validation ValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&validation); err != nil {
		return nil, fmt.Errorf("sslcommerz validation decode: %w", err)
	}

	return &validation, nil
}

// IsValid reports whether the validator confirmed the transaction.
func (v *ValidationResponse) IsValid() bool {
	return v.Status == "VALID" || v.Status == "VALIDATED"
}

// SetEndpoints overrides the gateway URLs. Tests point the client at a
// local stub server.
func (c *Client) SetEndpoints(sessionURL, validationURL string) {
	c.sessionURL = sessionURL
	c.validationURL = validationURL
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
