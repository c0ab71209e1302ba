// Package gst wraps the external GSTIN verification service. The service is
// a plain GET endpoint keyed by a shared secret; it answers with a validity
// flag and, for valid numbers, the registered taxpayer's details.
package gst

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/billcraft/billcraft-api/internal/config"
	"github.com/billcraft/billcraft-api/pkg/apperror"
)

// Address is the primary place of business block of a lookup response
type Address struct {
	StateCode string `json:"stcd"`
	Pincode   string `json:"pncd"`
}

// PrimaryAddress nests the formatted address string and its parts
type PrimaryAddress struct {
	Adr  string  `json:"adr"`
	Addr Address `json:"addr"`
}

// TaxpayerData is the detail payload for a valid GSTIN
type TaxpayerData struct {
	LegalName        string         `json:"lgnm"`
	TradeName        string         `json:"tradeNam"`
	Status           string         `json:"sts"`
	RegistrationDate string         `json:"rgdt"`
	BusinessType     string         `json:"ctb"`
	Jurisdiction     string         `json:"stj"`
	NatureOfBusiness []string       `json:"nba"`
	PrimaryAddress   PrimaryAddress `json:"pradr"`
}

// LookupResponse is the registry's envelope. Flag is false for unknown or
// cancelled GSTINs, with the reason in Message.
type LookupResponse struct {
	Flag    bool          `json:"flag"`
	Message string        `json:"message"`
	Data    *TaxpayerData `json:"data"`
}

// Name returns the display name for the taxpayer, preferring the legal name
func (d *TaxpayerData) Name() string {
	if d.LegalName != "" {
		return d.LegalName
	}
	if d.TradeName != "" {
		return d.TradeName
	}
	return "Unknown Company"
}

// Validator verifies a GSTIN against the registry
type Validator interface {
	Validate(ctx context.Context, gstin string) (*TaxpayerData, error)
}

type client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient creates a registry client from configuration
func NewClient(cfg *config.GSTConfig) Validator {
	return &client{
		baseURL: cfg.BaseURL,
		secret:  cfg.Secret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// maxAttempts bounds the retry on transport errors. A rejection from the
// registry (flag=false or a non-OK status) is final and never retried.
const maxAttempts = 2

func (c *client) Validate(ctx context.Context, gstin string) (*TaxpayerData, error) {
	if c.secret == "" {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "GST validation service not configured")
	}

	url := fmt.Sprintf("%s/check/%s/%s", c.baseURL, c.secret, gstin)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		data, final, err := c.lookup(ctx, url)
		if err == nil {
			return data, nil
		}
		if final {
			return nil, err
		}
		lastErr = err
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	return nil, lastErr
}

// lookup performs one registry call. The second return value marks errors
// that must not be retried.
func (c *client) lookup(ctx context.Context, url string) (*TaxpayerData, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, true, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, apperror.NewUpstreamError("Network error while validating GST number")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, true, apperror.NewBadRequestError(
			fmt.Sprintf("Failed to validate GST number. Status: %d", resp.StatusCode))
	}

	var payload LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, apperror.NewUpstreamError("Invalid response from GST registry")
	}

	if !payload.Flag || payload.Data == nil {
		msg := payload.Message
		if msg == "" {
			msg = "Invalid GST number"
		}
		return nil, true, apperror.NewBadRequestError(msg)
	}

	return payload.Data, true, nil
}
