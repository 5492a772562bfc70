package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sethvargo/go-retry"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

// webhookIssuer identifies tokens minted for signed outbound webhooks.
const webhookIssuer = "mlodash-workflow"

var allowedWebhookMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// ExecuteWebhookAction dispatches CALL_WEBHOOK.
func (as *ActionService) ExecuteWebhookAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryWebhook, execCtx)

	var cfg models.WebhookConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid webhook action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionCallWebhook:
		return as.executeCallWebhook(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown webhook action type: %s", actionType))
	}
}

// executeCallWebhook issues the outbound HTTP call with a constant-delay retry
// policy. 2xx is terminal success; 4xx other than 429 is terminal failure;
// 5xx, 429 and transport errors are retryable up to maxRetries. The URL is
// validated and the substituted body JSON-checked before any attempt, so a
// malformed config consumes zero network attempts.
func (as *ActionService) executeCallWebhook(ctx context.Context, cfg *models.WebhookConfig, execCtx *models.ExecutionContext) models.ActionResult {
	parsed, err := url.ParseRequestURI(cfg.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return models.Fail(fmt.Sprintf("Invalid webhook URL: %q", cfg.URL))
	}

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = constants.WebhookDefaultMethod
	}
	if !containsString(allowedWebhookMethods, method) {
		return models.Fail(fmt.Sprintf("Invalid HTTP method: %s", cfg.Method))
	}

	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}
	pctx := placeholderContext(execCtx, client)

	// Default headers merged with (and overridable by) caller headers;
	// placeholder substitution applies to every caller-supplied value.
	headers := map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   constants.WebhookUserAgent,
	}
	for name, value := range cfg.Headers {
		headers[name] = RenderTemplate(value, pctx)
	}

	var body []byte
	if cfg.BodyTemplate != "" {
		rendered := RenderTemplate(cfg.BodyTemplate, pctx)
		if !json.Valid([]byte(rendered)) {
			return models.Fail("Webhook body is not valid JSON after placeholder substitution")
		}
		body = []byte(rendered)
	}

	if cfg.SigningSecret != "" {
		token, err := as.signWebhookToken(cfg.SigningSecret, execCtx)
		if err != nil {
			return models.Fail(fmt.Sprintf("Failed to sign webhook request: %v", err))
		}
		headers["Authorization"] = "Bearer " + token
	}

	timeout := constants.WebhookDefaultTimeout
	if cfg.TimeoutSeconds != nil && *cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(*cfg.TimeoutSeconds) * time.Second
	}
	delay := constants.WebhookDefaultRetryDelay
	if cfg.RetryDelaySeconds != nil && *cfg.RetryDelaySeconds > 0 {
		delay = time.Duration(*cfg.RetryDelaySeconds) * as.webhookDelayUnit
	}
	maxRetries := constants.WebhookDefaultMaxRetries
	if cfg.MaxRetries != nil && *cfg.MaxRetries >= 0 {
		maxRetries = *cfg.MaxRetries
	}
	if cfg.RetryOnFailure != nil && !*cfg.RetryOnFailure {
		maxRetries = 0
	}

	backoff := retry.WithMaxRetries(uint64(maxRetries), retry.NewConstant(delay))

	attempts := 0
	lastStatus := 0
	lastBody := ""
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		status, respBody, err := as.attemptWebhook(ctx, method, cfg.URL, headers, body, timeout)
		if err != nil {
			// Transport failures (timeouts, refused connections) are
			// treated the same as retryable HTTP statuses.
			return retry.RetryableError(err)
		}
		lastStatus, lastBody = status, respBody
		if status >= 200 && status < 300 {
			return nil
		}
		if status == http.StatusTooManyRequests || status >= 500 {
			return retry.RetryableError(fmt.Errorf("webhook returned status %d", status))
		}
		return fmt.Errorf("webhook returned status %d", status)
	})

	if err != nil {
		as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeWebhookFailed,
			fmt.Sprintf("Webhook call to %s failed after %d attempt(s): %v", cfg.URL, attempts, err),
			map[string]interface{}{"url": cfg.URL, "attempts": attempts, "lastStatus": lastStatus})

		data := map[string]interface{}{"attempts": attempts}
		if lastStatus != 0 {
			data["statusCode"] = lastStatus
			data["responseBody"] = truncate(lastBody, constants.WebhookBodyLimit)
		}
		return models.ActionResult{
			Success: false,
			Message: fmt.Sprintf("Webhook call to %s failed after %d attempt(s): %v", cfg.URL, attempts, err),
			Data:    data,
		}
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeWebhookCalled,
		fmt.Sprintf("Webhook called: %s %s (status %d)", method, cfg.URL, lastStatus),
		map[string]interface{}{"url": cfg.URL, "statusCode": lastStatus, "attempts": attempts})

	return models.Succeed(fmt.Sprintf("Webhook call succeeded with status %d", lastStatus), map[string]interface{}{
		"statusCode":   lastStatus,
		"attempts":     attempts,
		"responseBody": truncate(lastBody, constants.WebhookBodyLimit),
	})
}

// attemptWebhook performs one HTTP attempt under its own timeout. The request
// is rebuilt per attempt so the body reader is fresh on every retry.
func (as *ActionService) attemptWebhook(ctx context.Context, method, rawURL string, headers map[string]string, body []byte, timeout time.Duration) (int, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, reader)
	if err != nil {
		return 0, "", err
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := as.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, int64(constants.WebhookBodyLimit)+1))
	if err != nil {
		respBody = nil
	}
	return resp.StatusCode, string(respBody), nil
}

// signWebhookToken mints a short-lived HS256 bearer token so receivers can
// authenticate workflow-originated calls.
func (as *ActionService) signWebhookToken(secret string, execCtx *models.ExecutionContext) (string, error) {
	now := as.now()
	claims := jwt.MapClaims{
		"iss": webhookIssuer,
		"sub": execCtx.ClientID,
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
