package idrx

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/pkg/metrics"
)

// Provider-mandated header names; they must stay consistent with the
// signed string built in Sign.
const (
	HeaderAPIKey    = "idrx-api-key"
	HeaderSignature = "idrx-api-sig"
	HeaderTimestamp = "idrx-api-ts"
)

const (
	pathOnboarding  = "/api/auth/onboarding"
	pathBankCatalog = "/api/transaction/method"
	pathRates       = "/api/transaction/rates"
	pathMintRequest = "/api/transaction/mint-request"
)

// Config holds provider connection settings, injected at construction
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client sends signed requests to the IDRX provider. One outbound call per
// invocation, no retries; retry policy belongs to callers.
type Client struct {
	baseURL    string
	appCreds   Credentials
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a provider client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appCreds:   Credentials{APIKey: cfg.APIKey, APISecret: cfg.APISecret},
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// AppCredentials returns the application-wide signing identity
func (c *Client) AppCredentials() Credentials {
	return c.appCreds
}

// ProviderError is a non-2xx provider response. The raw body is preserved so
// callers can tell an authentication failure from a business-rule rejection.
type ProviderError struct {
	StatusCode int
	Body       string
	kind       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("idrx: status %d: %s", e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.kind
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainerrors.ErrProviderAuth
	case status >= 500:
		return domainerrors.ErrProviderUnavailable
	default:
		return domainerrors.ErrProviderRejected
	}
}

func outcomeLabel(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "auth_rejected"
	case status >= 500:
		return "unavailable"
	default:
		return "rejected"
	}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// do signs and sends one request. signedBody is what the signature covers,
// sendBody what goes on the wire; they differ only for multipart uploads.
// The timestamp is built once and the same string is used for both the
// signature and the header.
func (c *Client) do(ctx context.Context, endpoint, method, path string, signedBody, sendBody []byte, contentType string, creds Credentials, out interface{}) error {
	url := c.baseURL + path
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	signature, err := Sign(method, url, signedBody, timestamp, creds.APISecret)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if sendBody != nil {
		reqBody = bytes.NewReader(sendBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderAPIKey, creds.APIKey)
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderTimestamp, timestamp)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%w: %v", domainerrors.ErrProviderTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%w: %v", domainerrors.ErrProviderTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderRequests.WithLabelValues(endpoint, outcomeLabel(resp.StatusCode)).Inc()
		return &ProviderError{StatusCode: resp.StatusCode, Body: string(raw), kind: classify(resp.StatusCode)}
	}
	metrics.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("idrx: decode response: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("idrx: response carries no data: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("idrx: decode response data: %w", err)
	}
	return nil
}

// Onboard registers a user's KYC bundle with the provider and returns the
// per-user credentials. The multipart body carries the identity document;
// the signature covers the canonical JSON of the four text fields.
func (c *Client) Onboard(ctx context.Context, input OnboardInput) (*OnboardData, error) {
	signedBody, err := json.Marshal(onboardSignaturePayload{
		Email:    input.Email,
		FullName: input.FullName,
		Address:  input.Address,
		IDNumber: input.IDNumber,
	})
	if err != nil {
		return nil, err
	}

	fileBytes, err := base64.StdEncoding.DecodeString(input.IDFileBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: identity file is not valid base64", domainerrors.ErrInvalidInput)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"email":    input.Email,
		"fullname": input.FullName,
		"address":  input.Address,
		"idNumber": input.IDNumber,
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, err
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="idFile"; filename="identity.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(fileBytes); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var data OnboardData
	if err := c.do(ctx, "onboarding", http.MethodPost, pathOnboarding, signedBody, buf.Bytes(), w.FormDataContentType(), c.appCreds, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetBanks fetches the provider's bank catalog using the application
// credentials; the catalog is not user-scoped.
func (c *Client) GetBanks(ctx context.Context) ([]BankInfo, error) {
	var banks []BankInfo
	if err := c.do(ctx, "banks", http.MethodGet, pathBankCatalog, nil, nil, "application/json", c.appCreds, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// GetRates fetches current exchange rates; the provider payload is passed
// through unmodified.
func (c *Client) GetRates(ctx context.Context) (json.RawMessage, error) {
	var rates json.RawMessage
	if err := c.do(ctx, "rates", http.MethodGet, pathRates, nil, nil, "application/json", c.appCreds, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// MintRequest submits a mint request signed with the user's own provider
// credentials. The signature covers the exact bytes transmitted.
func (c *Client) MintRequest(ctx context.Context, creds Credentials, input *entities.MintInput) (*MintData, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	var data MintData
	if err := c.do(ctx, "mint", http.MethodPost, pathMintRequest, body, body, "application/json", creds, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
