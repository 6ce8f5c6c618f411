package models

// AddHoldingRequest is the body of POST /api/portfolio.
type AddHoldingRequest struct {
	Ticker   string  `json:"ticker" validate:"required,min=1,max=12"`
	Shares   float64 `json:"shares" validate:"required,gt=0"`
	AvgPrice float64 `json:"avg_price" validate:"required,gt=0"`
}

// TimeMachineRequest is the body of POST /api/time-machine.
type TimeMachineRequest struct {
	Ticker string  `json:"ticker" validate:"required,min=1,max=12"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Amount float64 `json:"amount" validate:"gte=0" default:"1000000"`
}

// ChatRequest is the body of POST /api/chat/guide.
type ChatRequest struct {
	Ticker  string `json:"ticker" validate:"required,min=1,max=12"`
	Message string `json:"message" validate:"required,min=1,max=500"`
}
