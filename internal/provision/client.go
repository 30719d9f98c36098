// Package provision requests the shared storage volume a pipeline run
// executes on.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/internal/env"
	"github.com/me/funcscan/pkg/model"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 4096

// Request is the body sent to the storage dispatcher.
type Request struct {
	StorageGiB int `json:"storage_gib"`
}

// Response is the dispatcher's answer; Name is the storage handle.
type Response struct {
	Name string `json:"name"`
}

// Client talks to the storage dispatcher.
type Client struct {
	httpClient *http.Client
	config     config.ProvisionConfig
	logger     *slog.Logger

	// lookupEnv resolves the execution token variable.
	lookupEnv func(string) (string, bool)
}

// NewClient creates a dispatcher client.
func NewClient(cfg config.ProvisionConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration},
		config:     cfg,
		logger:     logger.With("component", "provisioner"),
		lookupEnv:  env.Lookup,
	}
}

// Provision asks the dispatcher for a volume of the configured size and
// returns its handle. A missing execution token fails before any request
// is made. Failures are not retried here; the platform retries the stage.
func (c *Client) Provision(ctx context.Context) (string, error) {
	token, ok := c.lookupEnv(c.config.TokenEnv)
	if !ok {
		return "", &model.ConfigurationError{Field: c.config.TokenEnv, Err: model.ErrMissingToken}
	}

	body, err := json.Marshal(Request{StorageGiB: c.config.StorageGiB})
	if err != nil {
		return "", &model.ProvisioningError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	c.logger.Info("provisioning shared storage volume", "storage_gib", c.config.StorageGiB)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", &model.ProvisioningError{Err: fmt.Errorf("creating HTTP request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.config.AuthScheme+" "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.ProvisioningError{Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.ProvisioningError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.ProvisioningError{
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), maxErrorBody),
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", &model.ProvisioningError{Err: fmt.Errorf("unmarshaling response: %w", err)}
	}
	if out.Name == "" {
		return "", &model.ProvisioningError{Err: model.ErrEmptyHandle}
	}

	c.logger.Info("storage volume ready", "volume", out.Name)
	return out.Name, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
