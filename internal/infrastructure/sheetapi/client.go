package sheetapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"resume-review/internal/config"

	"github.com/go-resty/resty/v2"
)

// Client fetches the published CSV export of the candidate spreadsheet.
type Client interface {
	FetchRaw(ctx context.Context) (string, error)
}

type httpClient struct {
	url    string
	client *resty.Client
	logger *log.Logger
}

func NewClient(cfg config.SheetConfig, logger *log.Logger) Client {
	url := strings.TrimSpace(cfg.CSVURL)
	if url == "" {
		return nil
	}

	c := resty.New().
		SetTimeout(cfg.FetchTimeout).
		SetRetryCount(1)

	return &httpClient{url: url, client: c, logger: logger}
}

func (c *httpClient) FetchRaw(ctx context.Context) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("nil sheet client")
	}

	resp, err := c.client.R().SetContext(ctx).Get(c.url)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Sheet] fetch error url=%s err=%v", c.url, err)
		}
		return "", err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		err := fmt.Errorf("sheet fetch failed: status=%d", resp.StatusCode())
		if c.logger != nil {
			c.logger.Printf("[Sheet] fetch error url=%s status=%d", c.url, resp.StatusCode())
		}
		return "", err
	}

	return resp.String(), nil
}

var _ Client = (*httpClient)(nil)
