package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductSoldTrend(t *testing.T) {
	cases := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"both zero", 0, 0, 0},
		{"from zero", 7, 0, 100},
		{"growth", 3, 2, 50},
		{"clamped high", 50, 2, 1000},
		{"drop to zero", 0, 4, -100},
		{"one decimal", 4, 3, 33.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ProductSoldTrend(tc.current, tc.previous), 1e-9)
		})
	}
}

func TestPercentageChange(t *testing.T) {
	cases := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"both zero", 0, 0, 0},
		{"from zero", 150, 0, 100},
		{"decline", 150, 200, -25},
		{"unclamped", 5000, 10, 49900},
		{"two decimals", 4, 3, 33.33},
		{"negative base", 0, -50, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PercentageChange(tc.current, tc.previous), 1e-9)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.InDelta(t, 10.13, RoundMoney(10.125000001), 1e-9)
	assert.InDelta(t, 3.33, RoundMoney(10.0/3), 1e-9)
}
