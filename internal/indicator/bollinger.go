package indicator

import "math"

// Bollinger calculates Bollinger Bands: a middle SMA with upper and
// lower bands offset by stdDev standard deviations.
func Bollinger(prices []float64, period int, stdDev float64) (upper, middle, lower []float64) {
	upper = nanSlice(len(prices))
	lower = nanSlice(len(prices))
	middle = SMA(prices, period)
	if period <= 1 || len(prices) < period {
		return upper, middle, lower
	}

	for i := period - 1; i < len(prices); i++ {
		mean := middle[i]
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := prices[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = mean + stdDev*sd
		lower[i] = mean - stdDev*sd
	}

	return upper, middle, lower
}
