package upstream

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Envelope is the {status, message, data} shape used by the clinic BI API.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// NewClient builds a resty client for the upstream aggregate API.
func NewClient(baseURL, token string, logger *zap.Logger) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal
	if token != "" {
		client.SetAuthToken(token)
	}
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("upstream call",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
		)
		return nil
	})
	return client
}

// CheckResponse turns a transport error or non-2xx response into an error.
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upstream %s %s: %s", resp.Request.Method, resp.Request.URL, resp.Status())
	}
	return nil
}
