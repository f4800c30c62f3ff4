package scoring

import (
	"fraudrisk/util"
	"strings"

	"github.com/shopspring/decimal"
)

func amountBucket(amount decimal.Decimal) AmountBucket {
	for _, b := range amountBuckets {
		if b.UpTo == nil || amount.LessThanOrEqual(*b.UpTo) {
			return b
		}
	}
	return amountBuckets[len(amountBuckets)-1]
}

func hourBucket(hour *int) HourBucket {
	if hour == nil {
		return noHour
	}
	for _, b := range hourBuckets {
		if b.contains(*hour) {
			return b
		}
	}
	return normalHours
}

func typeBucket(txType string) TypeBucket {
	for _, b := range typeBuckets {
		if b.Type == txType {
			return b
		}
	}
	return walletBucket
}

// Channel is the bucket a submitted type is scored under. Unrecognized types map to Wallet,
// so the result is always one of the four known channels.
func Channel(txType string) string {
	return typeBucket(strings.TrimSpace(txType)).Type
}

// interaction returns at most one bonus. The International condition takes priority
// over the late-night one even when both hold.
func interaction(amount decimal.Decimal, hour *int, txType string) (float64, string) {
	if !amount.GreaterThan(interactionThreshold) {
		return 0, ""
	}
	if txType == util.TransactionTypes.International {
		return internationalBonus, internationalBonusExpl
	}
	if hour != nil && *hour <= lateNightLastHour {
		return lateNightBonus, lateNightBonusExpl
	}
	return 0, ""
}

func Verdict(riskPercent float64) string {
	switch {
	case riskPercent >= FraudThreshold:
		return util.Verdicts.FraudVeryLikely
	case riskPercent >= SuspiciousThreshold:
		return util.Verdicts.Suspicious
	default:
		return util.Verdicts.Safe
	}
}

func component(name string, value, weight float64, explanation string) util.ScoreComponent {
	return util.ScoreComponent{
		Name:         name,
		Value:        value,
		Contribution: util.Round2(value * weight),
		Explanation:  explanation,
	}
}

// Score computes the heuristic risk of a transaction. It is pure and never fails:
// any amount, any hour (or none) and any channel string are accepted.
func Score(amount decimal.Decimal, hour *int, txType string) util.RiskResult {
	txType = strings.TrimSpace(txType)

	amt := amountBucket(amount)
	tm := hourBucket(hour)
	typ := typeBucket(txType)
	bonus, bonusExpl := interaction(amount, hour, txType)

	risk := amt.Score*AmountWeight + tm.Score*TimeWeight + typ.Score*TypeWeight + bonus*InteractionWeight
	risk = util.Round2(util.Clamp(risk, 0, 100))

	breakdown := []util.ScoreComponent{
		component(util.Components.Amount, amt.Score, AmountWeight, amt.Explanation),
		component(util.Components.Time, tm.Score, TimeWeight, tm.Explanation),
		component(util.Components.TransactionType, typ.Score, TypeWeight, typ.Explanation),
	}
	if bonus != 0 {
		breakdown = append(breakdown, component(util.Components.Interaction, bonus, InteractionWeight, bonusExpl))
	}

	return util.RiskResult{
		RiskPercent: risk,
		Verdict:     Verdict(risk),
		Breakdown:   breakdown,
	}
}

func ScoreInput(input util.TransactionInput) util.RiskResult {
	return Score(input.Amount, input.Hour, input.TransactionType)
}
