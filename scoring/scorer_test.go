package scoring

import (
	"testing"

	"fraudrisk/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourPtr(h int) *int {
	return &h
}

func TestScore_SmallDaytimeUPI(t *testing.T) {
	result := Score(decimal.NewFromInt(500), hourPtr(14), "UPI")

	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, 5.0, result.Breakdown[0].Value)
	assert.Equal(t, 5.0, result.Breakdown[1].Value)
	assert.Equal(t, 10.0, result.Breakdown[2].Value)
	assert.Equal(t, 6.0, result.RiskPercent)
	assert.Equal(t, util.Verdicts.Safe, result.Verdict)
}

func TestScore_LargeInternationalAtNight(t *testing.T) {
	result := Score(decimal.NewFromInt(60000), hourPtr(2), "International")

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, 70.0, result.Breakdown[0].Value)
	assert.Equal(t, 40.0, result.Breakdown[1].Value)
	assert.Equal(t, 50.0, result.Breakdown[2].Value)

	bonus := result.Breakdown[3]
	assert.Equal(t, util.Components.Interaction, bonus.Name)
	assert.Equal(t, 20.0, bonus.Value)
	assert.Equal(t, 1.0, bonus.Contribution)
	assert.Equal(t, internationalBonusExpl, bonus.Explanation)

	assert.Equal(t, 55.0, result.RiskPercent)
	assert.Equal(t, util.Verdicts.Suspicious, result.Verdict)
}

func TestScore_LargeCardAtNight(t *testing.T) {
	result := Score(decimal.NewFromInt(60000), hourPtr(2), "Card")

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, 15.0, result.Breakdown[2].Value)
	assert.Equal(t, 18.0, result.Breakdown[3].Value)
	assert.Equal(t, 0.9, result.Breakdown[3].Contribution)
	assert.Equal(t, lateNightBonusExpl, result.Breakdown[3].Explanation)
	assert.Equal(t, 46.15, result.RiskPercent)
	assert.Equal(t, util.Verdicts.Suspicious, result.Verdict)
}

func TestScore_InteractionPrecedence(t *testing.T) {
	// Both conditions hold; only the International bonus is applied.
	result := Score(decimal.NewFromInt(30000), hourPtr(3), "International")

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, 20.0, result.Breakdown[3].Value)
}

func TestScore_NoInteractionAtThreshold(t *testing.T) {
	result := Score(decimal.NewFromInt(20000), hourPtr(1), "International")
	assert.Len(t, result.Breakdown, 3)

	result = Score(decimal.NewFromInt(30000), hourPtr(6), "Card")
	assert.Len(t, result.Breakdown, 3)

	result = Score(decimal.NewFromInt(30000), nil, "Card")
	assert.Len(t, result.Breakdown, 3)
}

func TestScore_LateNightBonusIncludesHourFive(t *testing.T) {
	result := Score(decimal.NewFromInt(25000), hourPtr(5), "UPI")

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, 10.0, result.Breakdown[1].Value)
	assert.Equal(t, 18.0, result.Breakdown[3].Value)
}

func TestScore_BreakdownOrder(t *testing.T) {
	result := Score(decimal.NewFromInt(100), nil, "Card")

	names := make([]string, 0, len(result.Breakdown))
	for _, c := range result.Breakdown {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Amount", "Time", "Transaction Type"}, names)
}

func TestScore_UnknownTypeScoresAsWallet(t *testing.T) {
	crypto := Score(decimal.NewFromInt(1500), hourPtr(10), "Crypto")
	wallet := Score(decimal.NewFromInt(1500), hourPtr(10), "Wallet")

	assert.Equal(t, 35.0, crypto.Breakdown[2].Value)
	assert.Equal(t, wallet, crypto)
}

func TestScore_TypeIsTrimmed(t *testing.T) {
	result := Score(decimal.NewFromInt(100), hourPtr(12), "  Card ")
	assert.Equal(t, 15.0, result.Breakdown[2].Value)
}

func TestScore_MissingHour(t *testing.T) {
	result := Score(decimal.NewFromInt(100), nil, "UPI")

	assert.Equal(t, 0.0, result.Breakdown[1].Value)
	assert.Equal(t, "Time not available", result.Breakdown[1].Explanation)
}

func TestScore_ClampedForHugeAmounts(t *testing.T) {
	result := Score(decimal.NewFromInt(1_000_000_000), hourPtr(0), "International")

	assert.GreaterOrEqual(t, result.RiskPercent, 0.0)
	assert.LessOrEqual(t, result.RiskPercent, 100.0)
	assert.Equal(t, 55.0, result.RiskPercent)
}

func TestScore_FraudVeryLikelyIsUnreachableByBuckets(t *testing.T) {
	// The highest possible combination: 70*0.45 + 40*0.25 + 50*0.25 + 20*0.05.
	result := Score(decimal.NewFromInt(99999), hourPtr(4), "International")
	assert.Equal(t, 55.0, result.RiskPercent)
	assert.NotEqual(t, util.Verdicts.FraudVeryLikely, result.Verdict)
}

func TestAmountBuckets_Monotonic(t *testing.T) {
	amounts := []string{"0", "999.99", "1000", "1000.01", "5000", "5000.01", "20000", "20000.01", "50000", "50000.01", "1000000000"}

	prev := -1.0
	for _, raw := range amounts {
		score := amountBucket(decimal.RequireFromString(raw)).Score
		assert.GreaterOrEqual(t, score, prev, "amount %s", raw)
		prev = score
	}
}

func TestAmountBuckets_Boundaries(t *testing.T) {
	cases := map[string]float64{
		"1000":     5,
		"1000.01":  12,
		"5000":     12,
		"20000":    25,
		"50000":    48,
		"50000.01": 70,
		"-10":      5,
	}
	for raw, want := range cases {
		assert.Equal(t, want, amountBucket(decimal.RequireFromString(raw)).Score, "amount %s", raw)
	}
}

func TestHourBuckets(t *testing.T) {
	cases := map[int]float64{
		0: 40, 4: 40,
		5: 10, 7: 10,
		8: 5, 14: 5, 22: 5,
		23: 18,
	}
	for h, want := range cases {
		assert.Equal(t, want, hourBucket(hourPtr(h)).Score, "hour %d", h)
	}
	assert.Equal(t, 0.0, hourBucket(nil).Score)
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, util.Verdicts.FraudVeryLikely, Verdict(65))
	assert.Equal(t, util.Verdicts.FraudVeryLikely, Verdict(100))
	assert.Equal(t, util.Verdicts.Suspicious, Verdict(64.99))
	assert.Equal(t, util.Verdicts.Suspicious, Verdict(45))
	assert.Equal(t, util.Verdicts.Safe, Verdict(44.99))
	assert.Equal(t, util.Verdicts.Safe, Verdict(0))
}

func TestBuckets_ReturnsCopy(t *testing.T) {
	table := Buckets()
	require.Len(t, table.Amount, 5)
	require.Len(t, table.Hour, 4)
	require.Len(t, table.Type, 4)

	table.Amount[0].Score = 999
	assert.Equal(t, 5.0, amountBuckets[0].Score)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "UPI", Channel("UPI"))
	assert.Equal(t, "Card", Channel(" Card "))
	assert.Equal(t, "International", Channel("International"))
	assert.Equal(t, "Wallet", Channel("Wallet"))
	assert.Equal(t, "Wallet", Channel("Crypto"))
	assert.Equal(t, "Wallet", Channel("junk-42"))
	assert.Equal(t, "Wallet", Channel(""))
}
