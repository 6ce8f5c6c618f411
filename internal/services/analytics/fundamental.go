package analytics

import (
	"StockPilot/internal/domain/models"
)

const (
	undervaluedPE = 15.0
	overvaluedPE  = 30.0
)

// FundamentalAnalyzer labels valuation from company fundamentals. Only
// trailing P/E drives the label; the remaining ratios are carried through
// for display.
type FundamentalAnalyzer struct{}

func NewFundamentalAnalyzer() *FundamentalAnalyzer {
	return &FundamentalAnalyzer{}
}

func (a *FundamentalAnalyzer) Analyze(profile models.CompanyProfile) models.FundamentalSignal {
	sig := models.FundamentalSignal{
		Valuation:   models.ValuationFair,
		TrailingPE:  profile.TrailingPE,
		ForwardPE:   profile.ForwardPE,
		PEG:         profile.PEG,
		PriceToBook: profile.PriceToBook,
		Beta:        profile.Beta,
	}
	if profile.TrailingPE == nil {
		return sig
	}
	switch {
	case *profile.TrailingPE < undervaluedPE:
		sig.Valuation = models.ValuationUndervalued
	case *profile.TrailingPE > overvaluedPE:
		sig.Valuation = models.ValuationOvervalued
	}
	return sig
}
