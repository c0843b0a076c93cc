package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/internal/apierror"
)

const (
	installsResource  = "installs"
	purchasesResource = "purchases"
)

// Client submits install, session and purchase events. It is safe for
// concurrent use; its configuration never changes after NewClient.
type Client struct {
	baseURL   string
	authToken string
	http      *retryablehttp.Client
	logger    zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	httpClient := retryablehttp.NewClient()
	if cfg.HTTPClient != nil {
		httpClient.HTTPClient = cfg.HTTPClient
	}
	// Every call is a single attempt; the outcome goes straight back to the caller.
	httpClient.RetryMax = 0
	httpClient.CheckRetry = noRetry
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.Logger = leveledLogger{logger: logger.With().Str("component", "transport").Logger()}

	return &Client{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		http:      httpClient,
		logger:    logger,
	}, nil
}

// RecordInstall reports the first contact of a device with a title.
func (c *Client) RecordInstall(
	ctx context.Context,
	titleID, userInstallID, platform string,
	fingerprint *domain.Fingerprint,
) Result {
	return c.recordInstall(ctx, titleID, domain.Install{
		UserInstallID: userInstallID,
		Platform:      platform,
		Fingerprint:   fingerprint,
	})
}

// RecordSession reports a session ping. The server decides whether the
// install is new or a retention event; the request shape is always the same.
func (c *Client) RecordSession(
	ctx context.Context,
	titleID, userInstallID, platform, sessionID string,
	fingerprint *domain.Fingerprint,
) Result {
	if sessionID == "" {
		return failure(fmt.Errorf("%w: session_id is required", ErrInvalidEvent))
	}
	return c.recordInstall(ctx, titleID, domain.Install{
		UserInstallID: userInstallID,
		Platform:      platform,
		SessionID:     sessionID,
		Fingerprint:   fingerprint,
	})
}

// RecordPurchase reports a purchase against an existing install record. A
// zero quantity is sent as 1.
func (c *Client) RecordPurchase(ctx context.Context, titleID string, purchase domain.Purchase) Result {
	if err := validateEvent(titleID, purchase); err != nil {
		return failure(err)
	}
	return c.post(ctx, titleID, purchasesResource, purchase.WithDefaults())
}

func (c *Client) recordInstall(ctx context.Context, titleID string, install domain.Install) Result {
	install.Fingerprint = install.Fingerprint.Normalize()
	if err := validateEvent(titleID, install); err != nil {
		return failure(err)
	}
	return c.post(ctx, titleID, installsResource, install)
}

func (c *Client) endpoint(titleID, resource string) string {
	return c.baseURL + "titles/" + url.PathEscape(titleID) + "/" + resource
}

func (c *Client) post(ctx context.Context, titleID, resource string, payload any) Result {
	endpoint := c.endpoint(titleID, resource)
	logger := c.logger.With().Str("title", titleID).Str("endpoint", endpoint).Logger()

	body, err := encodeBody(payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode event")
		return failure(fmt.Errorf("encode body: %w", err))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return failure(fmt.Errorf("could not create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	res, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("could not send request")
		return failure(fmt.Errorf("could not send request: %w", err))
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Error().Err(err).Int("status", res.StatusCode).Msg("could not read response")
		return Result{StatusCode: res.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := apierror.FromResponse(res.StatusCode, string(data))
		logger.Error().Err(apiErr).Int("status", res.StatusCode).Msg("event rejected")
		return Result{StatusCode: res.StatusCode, Body: string(data), Err: apiErr}
	}

	logger.Debug().Int("status", res.StatusCode).Str("response", string(data)).Msg("event recorded")
	return Result{StatusCode: res.StatusCode, Body: string(data)}
}

// encodeBody marshals payload in struct field order without HTML escaping.
func encodeBody(payload any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func noRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}
