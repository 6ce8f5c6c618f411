package macro

import (
	"context"
	"fmt"
	"time"

	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
)

const defaultFearGreedURL = "https://production.dataviz.cnn.io/index/fearandgreed/graphdata"

// CNN rejects requests without a browser user agent.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// FearGreedClient reads the CNN Fear & Greed gauge.
type FearGreedClient struct {
	client *xhttp.Client
	url    string
	log    *applogger.Logger
}

func NewFearGreedClient(url string, timeout time.Duration, log *applogger.Logger) *FearGreedClient {
	if url == "" {
		url = defaultFearGreedURL
	}
	return &FearGreedClient{
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
		url:    url,
		log:    log,
	}
}

type graphData struct {
	FearAndGreed struct {
		Score float64 `json:"score"`
	} `json:"fear_and_greed"`
}

// FearGreedIndex returns the current gauge value in [0,100]. The caller is
// responsible for any fallback when this errors.
func (c *FearGreedClient) FearGreedIndex(ctx context.Context) (float64, error) {
	var body graphData
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.url,
		Headers: map[string]string{"User-Agent": browserUA},
	}, &body)
	if err != nil {
		return 0, fmt.Errorf("fear greed fetch: %w", err)
	}
	score := body.FearAndGreed.Score
	if score <= 0 || score > 100 {
		return 0, fmt.Errorf("fear greed fetch: implausible score %v", score)
	}
	return score, nil
}
