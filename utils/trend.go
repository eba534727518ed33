package utils

import "math"

// PercentageChange is the general growth helper used by revenue and overview
// reports: unclamped, rounded to two decimals.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return roundTo(((current-previous)/math.Abs(previous))*100, 2)
}

// ProductSoldTrend is the bounded trend of the products-sold report: clamped
// to [-100, 1000] and rounded to one decimal.
func ProductSoldTrend(current, previous float64) float64 {
	if previous == 0 && current == 0 {
		return 0
	}
	if previous == 0 {
		return 100
	}
	trend := ((current - previous) / previous) * 100
	trend = math.Max(-100, math.Min(1000, trend))
	return roundTo(trend, 1)
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// RoundMoney rounds an amount to cents.
func RoundMoney(value float64) float64 {
	return roundTo(value, 2)
}
