package gst

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z][Z][0-9A-Z]$`)

// TaxpayerInfo is the subset of the provider response the API exposes
type TaxpayerInfo struct {
	GSTIN         string `json:"gstin"`
	LegalName     string `json:"legalName"`
	TradeName     string `json:"tradeName"`
	Status        string `json:"status"`
	TaxpayerType  string `json:"taxpayerType"`
	State         string `json:"state"`
	Registered    string `json:"registrationDate"`
	LastUpdated   string `json:"lastUpdated"`
	BusinessKinds string `json:"natureOfBusiness"`
}

// Client looks up GSTIN details from the configured provider
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiHost    string
	logger     *zap.Logger
}

// NewClient creates a new GST lookup client
func NewClient(cfg config.GSTConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		logger:     logger.Named("gst"),
	}
}

// ValidateGSTIN checks the GSTIN format without calling the provider
func ValidateGSTIN(gstin string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(gstin)))
}

// Lookup fetches taxpayer details for a GSTIN
func (c *Client) Lookup(ctx context.Context, gstin string) (*TaxpayerInfo, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if !ValidateGSTIN(gstin) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid GSTIN format")
	}
	if c.apiKey == "" {
		return nil, shared.NewDomainError("BUSINESS_RULE", "GST lookup is not configured")
	}

	url := fmt.Sprintf("https://%s/free/gstin/%s", c.apiHost, gstin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gstin lookup failed", zap.String("gstin", gstin), zap.Error(err))
		return nil, shared.NewDomainError("BUSINESS_RULE", "GST lookup provider unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("gstin lookup rejected",
			zap.String("gstin", gstin),
			zap.Int("status", resp.StatusCode))
		return nil, shared.NewDomainError("BUSINESS_RULE", "GST lookup provider unavailable")
	}

	var payload struct {
		Data struct {
			GSTIN            string `json:"gstin"`
			LegalName        string `json:"lgnm"`
			TradeName        string `json:"tradeNam"`
			Status           string `json:"sts"`
			TaxpayerType     string `json:"dty"`
			State            string `json:"stj"`
			RegistrationDate string `json:"rgdt"`
			LastUpdated      string `json:"lstupdt"`
			NatureOfBusiness string `json:"nba"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Unexpected GST provider response")
	}

	return &TaxpayerInfo{
		GSTIN:         payload.Data.GSTIN,
		LegalName:     payload.Data.LegalName,
		TradeName:     payload.Data.TradeName,
		Status:        payload.Data.Status,
		TaxpayerType:  payload.Data.TaxpayerType,
		State:         payload.Data.State,
		Registered:    payload.Data.RegistrationDate,
		LastUpdated:   payload.Data.LastUpdated,
		BusinessKinds: payload.Data.NatureOfBusiness,
	}, nil
}
