package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tijara-app/tijara-api/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.True(t, dec("1.005").Round(2).Equal(money.Round2(dec("1.005"))))
	assert.Equal(t, "1.01", money.Round2(dec("1.005")).StringFixed(2))
	assert.Equal(t, "-1.01", money.Round2(dec("-1.005")).StringFixed(2))
	assert.Equal(t, "2.34", money.Round2(dec("2.344")).StringFixed(2))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "45.00", money.Line(dec("3"), dec("15")).StringFixed(2))
	// 3 × 0.335 = 1.005 → rounds per step, not truncates
	assert.Equal(t, "1.01", money.Line(dec("3"), dec("0.335")).StringFixed(2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "4.50", money.Percent(dec("45"), dec("10")).StringFixed(2))
	assert.Equal(t, "0.00", money.Percent(dec("45"), dec("0")).StringFixed(2))
	// 33.33 × 7% = 2.3331 → 2.33
	assert.Equal(t, "2.33", money.Percent(dec("33.33"), dec("7")).StringFixed(2))
}
