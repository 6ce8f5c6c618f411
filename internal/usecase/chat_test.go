package usecase

import (
	"context"
	"strings"
	"testing"

	"StockPilot/internal/domain/models"
)

func chatGuideWithData() *ChatGuide {
	data := &fakeMarketData{
		prices: map[string]float64{"AAPL": 189.5},
		profiles: map[string]models.CompanyProfile{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Summary: "아이폰을 만드는 회사입니다."},
		},
	}
	return NewChatGuide(data, NewConsultant())
}

func TestChatGreeting(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "AAPL", Message: "안녕하세요"})
	if got.Response != "안녕하세요! 투자에 대해 무엇이 궁금하신가요?" {
		t.Errorf("response = %q", got.Response)
	}
}

func TestChatProfileSummary(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "aapl", Message: "회사 소개 좀 해줘"})
	if !strings.Contains(got.Response, "AAPL 기업 개요") {
		t.Errorf("response = %q", got.Response)
	}
	if !strings.Contains(got.Response, "아이폰을 만드는 회사입니다.") {
		t.Errorf("response missing summary: %q", got.Response)
	}
}

func TestChatPrice(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "AAPL", Message: "지금 가격이 얼마야?"})
	if !strings.Contains(got.Response, "$189.50") {
		t.Errorf("response = %q", got.Response)
	}
}

func TestChatInvestmentGuide(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "AAPL", Message: "AAPL 살까 말까"})
	if !strings.Contains(got.Response, "투자 분석 결과") {
		t.Errorf("response = %q", got.Response)
	}
	if !strings.Contains(got.Response, "종합 점수") {
		t.Errorf("response missing score: %q", got.Response)
	}
}

func TestChatFallback(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "AAPL", Message: "날씨 어때"})
	if got.Response != "죄송합니다. 기업 개요, 가격, 또는 투자 전망에 대해 물어봐주세요." {
		t.Errorf("response = %q", got.Response)
	}
}

func TestChatGreetingWinsOverOtherKeywords(t *testing.T) {
	g := chatGuideWithData()
	got := g.Reply(context.Background(), models.ChatRequest{Ticker: "AAPL", Message: "안녕, 가격 알려줘"})
	if !strings.Contains(got.Response, "무엇이 궁금하신가요") {
		t.Errorf("response = %q", got.Response)
	}
}
