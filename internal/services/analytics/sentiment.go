package analytics

import (
	"github.com/jonreiter/govader"

	"StockPilot/internal/domain/models"
)

const sentimentBand = 0.1

// SentimentAnalyzer scores news headlines with a lexical polarity model.
// No fitting happens at runtime; the lexicon ships with the library.
type SentimentAnalyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Analyze averages the compound polarity of title+summary across items.
// No items yields the neutral signal with score 0.
func (a *SentimentAnalyzer) Analyze(news []models.NewsItem) models.SentimentSignal {
	sig := models.SentimentSignal{Label: models.SentimentNeutral}
	if len(news) == 0 {
		return sig
	}

	var total float64
	for _, item := range news {
		text := item.Title
		if item.Summary != "" {
			text += " " + item.Summary
		}
		total += a.vader.PolarityScores(text).Compound
	}
	sig.Count = len(news)
	sig.Score = total / float64(len(news))

	switch {
	case sig.Score > sentimentBand:
		sig.Label = models.SentimentPositive
	case sig.Score < -sentimentBand:
		sig.Label = models.SentimentNegative
	}
	return sig
}
