package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.twilio.com"
	messagesPathFormat         = "/2010-04-01/Accounts/%s/Messages.json"
	responseBodyReadLimit int64 = 64 * 1024
)

// Client wraps the Twilio Messages REST API. Credentials are supplied per
// call because they live in a database row the admin can swap at runtime.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Twilio client from configuration.
func NewClient(cfg config.TwilioConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Credentials identify the Twilio account a message is sent through.
type Credentials struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

func (c Credentials) validate() error {
	if c.AccountSID == "" || c.AuthToken == "" || c.PhoneNumber == "" {
		return errors.New("twilio credentials are incomplete")
	}
	return nil
}

type messageResponse struct {
	SID          string `json:"sid"`
	ErrorMessage string `json:"message"`
}

// SendMessage posts an SMS and returns the provider message SID.
func (c *Client) SendMessage(ctx context.Context, creds Credentials, to, body string) (string, error) {
	if err := creds.validate(); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "twilio credentials")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", creds.PhoneNumber)
	form.Set("Body", body)

	endpoint := c.baseURL + fmt.Sprintf(messagesPathFormat, url.PathEscape(creds.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build twilio request")
	}
	req.SetBasicAuth(creds.AccountSID, creds.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send sms")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read twilio response")
	}

	var parsed messageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode twilio response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := parsed.ErrorMessage
		if msg == "" {
			msg = fmt.Sprintf("twilio returned status %d", resp.StatusCode)
		}
		return "", pkgerrors.New(pkgerrors.CodeDependency, msg)
	}

	return parsed.SID, nil
}
