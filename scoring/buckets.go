package scoring

import (
	"fraudrisk/util"

	"github.com/shopspring/decimal"
)

const (
	AmountWeight      = 0.45
	TimeWeight        = 0.25
	TypeWeight        = 0.25
	InteractionWeight = 0.05
)

// Verdict thresholds, checked from the top down.
const (
	FraudThreshold      = 65.0
	SuspiciousThreshold = 45.0
)

type AmountBucket struct {
	UpTo        *decimal.Decimal `json:"upTo,omitempty"` // nil for the open-ended top bucket
	Score       float64          `json:"score"`
	Explanation string           `json:"explanation"`
}

type HourBucket struct {
	From        int     `json:"from"`
	To          int     `json:"to"`
	OpenEnded   bool    `json:"openEnded,omitempty"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

func (b HourBucket) contains(hour int) bool {
	if hour < b.From {
		return false
	}
	return b.OpenEnded || hour <= b.To
}

type TypeBucket struct {
	Type        string  `json:"type"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

func upTo(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var amountBuckets = []AmountBucket{
	{UpTo: upTo(1000), Score: 5, Explanation: "Very small amount, low risk"},
	{UpTo: upTo(5000), Score: 12, Explanation: "Small amount, low risk"},
	{UpTo: upTo(20000), Score: 25, Explanation: "Moderate amount, moderate risk"},
	{UpTo: upTo(50000), Score: 48, Explanation: "High amount, likely fraud"},
	{UpTo: nil, Score: 70, Explanation: "Extremely high amount, major fraud alert"},
}

// Matched in order. Hours that miss every range fall into normalHours.
var hourBuckets = []HourBucket{
	{From: 0, To: 4, Score: 40, Explanation: "Late-night transaction, very suspicious"},
	{From: 5, To: 7, Score: 10, Explanation: "Very early morning, unusual"},
	{From: 23, To: 23, OpenEnded: true, Score: 18, Explanation: "Late-night activity, suspicious"},
}

var (
	normalHours = HourBucket{From: 8, To: 22, Score: 5, Explanation: "Normal working hours"}
	noHour      = HourBucket{From: -1, To: -1, Score: 0, Explanation: "Time not available"}
)

var typeBuckets = []TypeBucket{
	{Type: util.TransactionTypes.UPI, Score: 10, Explanation: "UPI, trusted channel"},
	{Type: util.TransactionTypes.Card, Score: 15, Explanation: "Card, moderate risk"},
	{Type: util.TransactionTypes.International, Score: 50, Explanation: "International, high fraud risk"},
}

// Unrecognized channels are scored as Wallet.
var walletBucket = TypeBucket{Type: util.TransactionTypes.Wallet, Score: 35, Explanation: "Wallet, elevated risk"}

var interactionThreshold = decimal.NewFromInt(20000)

const (
	internationalBonus     = 20.0
	internationalBonusExpl = "Large International transaction, critical alert"
	lateNightBonus         = 18.0
	lateNightBonusExpl     = "High amount at late night, critical alert"
	lateNightLastHour      = 5
)

type Table struct {
	Weights    map[string]float64 `json:"weights"`
	Amount     []AmountBucket     `json:"amount"`
	Hour       []HourBucket       `json:"hour"`
	Type       []TypeBucket       `json:"type"`
	Thresholds map[string]float64 `json:"thresholds"`
}

// Buckets returns a copy of the scoring tables for display.
func Buckets() Table {
	hours := append([]HourBucket{}, hourBuckets...)
	hours = append(hours, normalHours)
	types := append([]TypeBucket{}, typeBuckets...)
	types = append(types, walletBucket)

	return Table{
		Weights: map[string]float64{
			util.Components.Amount:          AmountWeight,
			util.Components.Time:            TimeWeight,
			util.Components.TransactionType: TypeWeight,
			util.Components.Interaction:     InteractionWeight,
		},
		Amount: append([]AmountBucket{}, amountBuckets...),
		Hour:   hours,
		Type:   types,
		Thresholds: map[string]float64{
			util.Verdicts.FraudVeryLikely: FraudThreshold,
			util.Verdicts.Suspicious:      SuspiciousThreshold,
		},
	}
}
