// Package indicator computes technical indicators over close-price
// series. All functions return slices aligned to the input length,
// with NaN filling the warm-up prefix where the value is undefined.
package indicator

import "math"

// SMA calculates Simple Moving Average
func SMA(prices []float64, period int) []float64 {
	result := nanSlice(len(prices))
	if period <= 0 || len(prices) < period {
		return result
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	result[period-1] = sum / float64(period)

	// Rolling calculation
	for i := period; i < len(prices); i++ {
		sum = sum - prices[i-period] + prices[i]
		result[i] = sum / float64(period)
	}

	return result
}

// EMA calculates Exponential Moving Average, seeded with the SMA of
// the first period values.
func EMA(prices []float64, period int) []float64 {
	result := nanSlice(len(prices))
	if period <= 0 || len(prices) < period {
		return result
	}

	multiplier := 2.0 / float64(period+1)

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	result[period-1] = ema

	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result[i] = ema
	}

	return result
}

// nanSlice returns a slice of n NaN values
func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
