package translate

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	applogger "StockPilot/pkg/logger"
)

// Client translates text through the public gtx translate endpoint. Every
// failure path returns the input unchanged: an untranslated summary beats
// no summary.
type Client struct {
	rest    *resty.Client
	baseURL string
	log     *applogger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://translate.googleapis.com/translate_a/single"
	}
	return &Client{
		rest:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
		log:     log,
	}
}

func (c *Client) Translate(ctx context.Context, text, targetLocale string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "auto",
			"tl":     targetLocale,
			"dt":     "t",
			"q":      text,
		}).
		Get(c.baseURL)
	if err != nil {
		c.log.Debug("translate failed", applogger.Error(err))
		return text
	}
	if resp.IsError() {
		c.log.Debug("translate rejected", applogger.Int("status", resp.StatusCode()))
		return text
	}

	translated, ok := parseGtx(resp.Body())
	if !ok {
		c.log.Debug("translate parse failed")
		return text
	}
	return translated
}

// parseGtx unpacks the gtx response: a nested array whose first element is
// a list of [translatedSegment, originalSegment, ...] pairs.
func parseGtx(body []byte) (string, bool) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil || len(root) == 0 {
		return "", false
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", false
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	out := b.String()
	return out, out != ""
}
