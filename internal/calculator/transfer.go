package calculator

import (
	"fmt"
	"strings"

	"HBDSaver/internal/model"

	"github.com/shopspring/decimal"
)

// Mode selects how much of a reward is moved to savings.
type Mode string

const (
	ModeFixed      Mode = "fixed"
	ModePercentage Mode = "percentage"
)

// ParseMode accepts "fixed"/"percentage" and the legacy "0"/"1".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "0":
		return ModeFixed, nil
	case "percentage", "percent", "1":
		return ModePercentage, nil
	default:
		return "", &model.ConfigurationError{Field: "send_mode", Msg: fmt.Sprintf("unknown mode %q, want fixed or percentage", s)}
	}
}

// Policy is the configured send rule. Values are kept as text so validation
// can tell a missing value from a non-numeric one.
type Policy struct {
	Mode         Mode
	FixedValue   string
	PercentValue string
}

// Validate checks the value the policy's mode depends on.
func Validate(p Policy) error {
	switch p.Mode {
	case ModePercentage:
		_, err := positive("percent_value", p.PercentValue)
		return err
	case ModeFixed:
		_, err := positive("fixed_value", p.FixedValue)
		return err
	default:
		return &model.ConfigurationError{Field: "send_mode", Msg: fmt.Sprintf("unknown mode %q", p.Mode)}
	}
}

// ComputeTransferAmount maps a reward to the amount to save.
//
// Percentage mode returns reward*percent/100. Fixed mode returns the fixed
// value, or a *model.BusinessRuleAbort when it exceeds the reward. Invalid
// values yield a *model.ConfigurationError. An amount that rounds to zero at
// chain precision is also a business abort.
func ComputeTransferAmount(reward decimal.Decimal, p Policy) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch p.Mode {
	case ModePercentage:
		percent, err := positive("percent_value", p.PercentValue)
		if err != nil {
			return decimal.Zero, err
		}
		amount = reward.Mul(percent).Div(decimal.NewFromInt(100))
	case ModeFixed:
		fixed, err := positive("fixed_value", p.FixedValue)
		if err != nil {
			return decimal.Zero, err
		}
		if fixed.GreaterThan(reward) {
			return decimal.Zero, &model.BusinessRuleAbort{
				Reason: fmt.Sprintf("fixed value %s greater than reward %s", fixed, reward),
			}
		}
		amount = fixed
	default:
		return decimal.Zero, &model.ConfigurationError{Field: "send_mode", Msg: fmt.Sprintf("unknown mode %q", p.Mode)}
	}

	if !amount.Round(model.AssetPrecision).IsPositive() {
		return decimal.Zero, &model.BusinessRuleAbort{
			Reason: fmt.Sprintf("amount %s rounds to zero", amount),
		}
	}
	return amount, nil
}

func positive(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &model.ConfigurationError{Field: field, Msg: "missing"}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &model.ConfigurationError{Field: field, Msg: fmt.Sprintf("not a number: %q", raw)}
	}
	if !v.IsPositive() {
		return decimal.Zero, &model.ConfigurationError{Field: field, Msg: "cannot be zero or negative"}
	}
	return v, nil
}
