// Package backoffice is the HTTP client for the back-office API, used by the
// ledger syncer and any tooling that drives the open-sells endpoints.
package backoffice

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gaysay/backoffice/internal/domain/models"
)

// Client exposes the open-sells operations of the back-office API.
type Client interface {
	ListOpenSells(ctx context.Context) ([]models.OpenSellsView, error)
	GetSells(ctx context.Context, id string) (*models.SellsRecord, error)
	OpenSells(ctx context.Context, itemID string, frequency int) (*models.SellsRecord, error)
	SyncSells(ctx context.Context, id string, frequency int) (*models.SellsRecord, error)
	CloseSells(ctx context.Context, id string) (*models.SellsRecord, error)
	DeleteSells(ctx context.Context, id string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an API client for the given base URL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// APIError carries the status and message of a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backoffice api error: status=%d, message=%s", e.Status, e.Message)
}

// IsNotFound reports whether the error is a 404 API response.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsConflict reports whether the error is a 409 API response.
func (e *APIError) IsConflict() bool { return e.Status == http.StatusConflict }

// messageBody is the uniform error body of the API.
type messageBody struct {
	Message string `json:"message"`
}

// recordEnvelope mirrors the {message, data} body of mutation responses.
type recordEnvelope struct {
	Message string              `json:"message"`
	Data    *models.SellsRecord `json:"data"`
}

func apiErrorFrom(resp *resty.Response, body *messageBody) error {
	message := ""
	if body != nil {
		message = body.Message
	}
	return &APIError{Status: resp.StatusCode(), Message: message}
}

// ListOpenSells fetches every open record with its menu item joined.
func (c *APIClient) ListOpenSells(ctx context.Context) ([]models.OpenSellsView, error) {
	views := make([]models.OpenSellsView, 0)
	apiErr := new(messageBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&views).
		SetError(apiErr).
		Get("/open-sells")
	if err != nil {
		return nil, fmt.Errorf("list open sells: %w", err)
	}
	if resp.IsError() {
		return nil, apiErrorFrom(resp, apiErr)
	}
	return views, nil
}

// GetSells fetches one record by id.
func (c *APIClient) GetSells(ctx context.Context, id string) (*models.SellsRecord, error) {
	record := new(models.SellsRecord)
	apiErr := new(messageBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(record).
		SetError(apiErr).
		Get(fmt.Sprintf("/open-sells/%s", id))
	if err != nil {
		return nil, fmt.Errorf("get sells %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, apiErrorFrom(resp, apiErr)
	}
	return record, nil
}

// OpenSells starts a new sales period for a menu item.
func (c *APIClient) OpenSells(ctx context.Context, itemID string, frequency int) (*models.SellsRecord, error) {
	return c.postRecord(ctx, "/open-sells", map[string]any{
		"itemId":    itemID,
		"frequency": frequency,
	})
}

// SyncSells appends an accumulated frequency delta to an open record and
// returns the authoritative updated record.
func (c *APIClient) SyncSells(ctx context.Context, id string, frequency int) (*models.SellsRecord, error) {
	return c.postRecord(ctx, "/open-sells/sync", map[string]any{
		"id":        id,
		"frequency": frequency,
	})
}

// CloseSells ends the sales period of an open record.
func (c *APIClient) CloseSells(ctx context.Context, id string) (*models.SellsRecord, error) {
	return c.postRecord(ctx, "/open-sells/close", map[string]any{"id": id})
}

// DeleteSells removes a record in either state.
func (c *APIClient) DeleteSells(ctx context.Context, id string) error {
	apiErr := new(messageBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		Delete(fmt.Sprintf("/open-sells/%s", id))
	if err != nil {
		return fmt.Errorf("delete sells %s: %w", id, err)
	}
	if resp.IsError() {
		return apiErrorFrom(resp, apiErr)
	}
	return nil
}

func (c *APIClient) postRecord(ctx context.Context, path string, payload map[string]any) (*models.SellsRecord, error) {
	result := new(recordEnvelope)
	apiErr := new(messageBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, apiErrorFrom(resp, apiErr)
	}
	return result.Data, nil
}
