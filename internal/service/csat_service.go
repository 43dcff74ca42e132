package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/domain"
)

// CSATSubmitter forwards satisfaction records to the external collection
// endpoint. The conversation flow treats submission as fire-and-forget.
type CSATSubmitter interface {
	Submit(ctx context.Context, record domain.CSAT) error
}

// CSATClient posts CSAT records over HTTP.
type CSATClient struct {
	client   *resty.Client
	endpoint string
	logger   *zap.Logger
}

// NewCSATClient constructs the client.
func NewCSATClient(endpoint string, logger *zap.Logger) *CSATClient {
	return &CSATClient{
		client:   resty.New().SetTimeout(5 * time.Second),
		endpoint: endpoint,
		logger:   logger,
	}
}

// Submit posts the record. The response body is ignored.
func (c *CSATClient) Submit(ctx context.Context, record domain.CSAT) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(c.endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("csat submission returned status %d", resp.StatusCode())
	}
	c.logger.Debug("csat submitted",
		zap.String("rating", string(record.Rating)),
		zap.String("resolved_by", string(record.ResolvedBy)))
	return nil
}
