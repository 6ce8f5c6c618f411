package analytics

import (
	"testing"

	"StockPilot/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func TestValuationLabel(t *testing.T) {
	a := NewFundamentalAnalyzer()

	tests := []struct {
		name string
		pe   *float64
		want string
	}{
		{"missing PE", nil, models.ValuationFair},
		{"low PE", fptr(9.8), models.ValuationUndervalued},
		{"boundary low", fptr(15.0), models.ValuationFair},
		{"mid PE", fptr(22.4), models.ValuationFair},
		{"boundary high", fptr(30.0), models.ValuationFair},
		{"high PE", fptr(41.2), models.ValuationOvervalued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := a.Analyze(models.CompanyProfile{Ticker: "AAPL", TrailingPE: tt.pe})
			if sig.Valuation != tt.want {
				t.Fatalf("valuation = %q, want %q", sig.Valuation, tt.want)
			}
		})
	}
}

func TestRatiosPassthrough(t *testing.T) {
	p := models.CompanyProfile{
		Ticker:      "MSFT",
		TrailingPE:  fptr(33.1),
		ForwardPE:   fptr(28.0),
		PEG:         fptr(2.1),
		PriceToBook: fptr(11.5),
		Beta:        fptr(0.9),
	}
	sig := NewFundamentalAnalyzer().Analyze(p)
	if sig.ForwardPE == nil || *sig.ForwardPE != 28.0 {
		t.Fatalf("forward PE not passed through: %v", sig.ForwardPE)
	}
	if sig.PEG == nil || *sig.PEG != 2.1 {
		t.Fatalf("PEG not passed through: %v", sig.PEG)
	}
	if sig.Beta == nil || *sig.Beta != 0.9 {
		t.Fatalf("beta not passed through: %v", sig.Beta)
	}
}
