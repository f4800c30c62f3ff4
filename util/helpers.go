package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"fraudrisk/services"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNatsNotConnected = errors.New("nats connection not established")

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseAmount treats a missing or blank amount as zero, so an empty form field is scored
// as a zero-value transaction instead of producing the error result. Anything else must
// be a decimal number.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not convert amount to a number: %q", raw)
	}
	return amount, nil
}

// NormalizeType trims the submitted channel and falls back to UPI when nothing was sent.
func NormalizeType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TransactionTypes.UPI
	}
	return raw
}

// ErrorResult is the zero-risk result returned when a request could not be scored.
func ErrorResult(err error) RiskResult {
	errText := err.Error()
	return RiskResult{
		RiskPercent: 0,
		Verdict:     "Error: " + errText,
		Breakdown:   []ScoreComponent{},
		Err:         &errText,
	}
}

func PublishAlert(subject string, assessment Assessment) error {
	if services.NatsConn == nil {
		return ErrNatsNotConnected
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("encoding alert: %w", err)
	}

	if err := services.NatsConn.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}
