package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	applogger "StockPilot/pkg/logger"

	"StockPilot/internal/domain/models"
)

const defaultMaxItems = 10

// Config selects the Google News edition to query.
type Config struct {
	BaseURL  string // e.g. https://news.google.com/rss/search
	Language string // hl parameter, e.g. ko
	Region   string // gl parameter, e.g. KR
}

// GoogleNews fetches headlines from the Google News RSS search feed. Any
// upstream failure degrades to an empty batch; headlines are advisory input,
// never a hard dependency.
type GoogleNews struct {
	rest *resty.Client
	cfg  Config
	log  *applogger.Logger
}

func NewGoogleNews(cfg Config, timeout time.Duration, log *applogger.Logger) *GoogleNews {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://news.google.com/rss/search"
	}
	if cfg.Language == "" {
		cfg.Language = "ko"
	}
	if cfg.Region == "" {
		cfg.Region = "KR"
	}
	rest := resty.New().SetTimeout(timeout)
	return &GoogleNews{rest: rest, cfg: cfg, log: log}
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// News returns up to 10 recent headlines for the query, most recent first
// as delivered by the feed.
func (g *GoogleNews) News(ctx context.Context, query string) []models.NewsItem {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	resp, err := g.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":    query + " 주가",
			"hl":   g.cfg.Language,
			"gl":   g.cfg.Region,
			"ceid": fmt.Sprintf("%s:%s", g.cfg.Region, g.cfg.Language),
		}).
		Get(g.cfg.BaseURL)
	if err != nil {
		g.log.Debug("news fetch failed", applogger.String("query", query), applogger.Error(err))
		return nil
	}
	if resp.IsError() {
		g.log.Debug("news fetch rejected",
			applogger.String("query", query), applogger.Int("status", resp.StatusCode()))
		return nil
	}

	var feed rssFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		g.log.Debug("news feed parse failed", applogger.String("query", query), applogger.Error(err))
		return nil
	}

	items := feed.Channel.Items
	if len(items) > defaultMaxItems {
		items = items[:defaultMaxItems]
	}
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.NewsItem{
			Title:     strings.TrimSpace(item.Title),
			Summary:   stripTags(item.Description),
			Link:      item.Link,
			Published: item.PubDate,
		})
	}
	return out
}

// stripTags removes the anchor markup Google News embeds in descriptions.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
