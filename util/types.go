package util

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput is the normalized form of a single scoring request.
// Hour is nil when the submitted timestamp could not be parsed.
type TransactionInput struct {
	Amount          decimal.Decimal
	Hour            *int
	TransactionType string
}

type ScoreComponent struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

type RiskResult struct {
	RiskPercent float64          `json:"riskPercent"`
	Verdict     string           `json:"verdict"`
	Breakdown   []ScoreComponent `json:"breakdown"`
	Err         *string          `json:"error,omitempty"`
}

// Assessment is a scored transaction as it is stored in history and sent as an alert.
type Assessment struct {
	ID              uuid.UUID        `json:"id"`
	Amount          decimal.Decimal  `json:"amount"`
	TimeStr         string           `json:"time"`
	TransactionType string           `json:"transactionType"`
	RiskPercent     float64          `json:"riskPercent"`
	Verdict         string           `json:"verdict"`
	Breakdown       []ScoreComponent `json:"breakdown"`
	CreatedAt       time.Time        `json:"createdAt"`
}

func NewAssessment(input TransactionInput, timeStr string, result RiskResult) Assessment {
	return Assessment{
		ID:              uuid.New(),
		Amount:          input.Amount,
		TimeStr:         timeStr,
		TransactionType: input.TransactionType,
		RiskPercent:     result.RiskPercent,
		Verdict:         result.Verdict,
		Breakdown:       result.Breakdown,
		CreatedAt:       time.Now().UTC(),
	}
}
