package usecase

import (
	"context"
	"fmt"
	"strings"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
)

// ChatGuide routes a free-form message to one of a few canned analyses by
// keyword. This is a guide, not a conversational model.
type ChatGuide struct {
	data       MarketData
	consultant *Consultant
}

func NewChatGuide(data MarketData, consultant *Consultant) *ChatGuide {
	return &ChatGuide{data: data, consultant: consultant}
}

func (g *ChatGuide) Reply(ctx context.Context, req models.ChatRequest) models.ChatReply {
	msg := strings.ToLower(req.Message)
	ticker := strings.ToUpper(req.Ticker)

	if strings.Contains(msg, "안녕") {
		return models.ChatReply{Response: "안녕하세요! 투자에 대해 무엇이 궁금하신가요?"}
	}

	if containsAnyOf(msg, "개요", "소개", "뭐하는") {
		profile := g.data.TranslatedProfile(ctx, ticker)
		return models.ChatReply{Response: fmt.Sprintf("**%s 기업 개요**\n\n%s", ticker, profile.Summary)}
	}

	if containsAnyOf(msg, "가격", "얼마") {
		price := g.data.LastPrice(ctx, ticker)
		return models.ChatReply{Response: fmt.Sprintf("현재 %s의 가격은 **$%.2f** 입니다.", ticker, price)}
	}

	if containsAnyOf(msg, "투자", "살까", "팔까", "전망", "가이드") {
		series := g.data.History(ctx, ticker, repository.P1Y)
		profile := g.data.Profile(ctx, ticker)
		news := g.data.News(ctx, ticker)
		advice := g.consultant.Advise(ticker, series, profile, news)

		var sb strings.Builder
		for _, r := range advice.Reasons {
			sb.WriteString("- ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
		return models.ChatReply{Response: fmt.Sprintf(
			"**투자 분석 결과: %s**\n\n이유:\n%s\n종합 점수: %d",
			advice.Action, sb.String(), advice.Score)}
	}

	return models.ChatReply{Response: "죄송합니다. 기업 개요, 가격, 또는 투자 전망에 대해 물어봐주세요."}
}

func containsAnyOf(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
