package indicator

import "math"

// Standard MACD periods.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD calculates the MACD line (fast EMA minus slow EMA) and its
// signal line (EMA of the MACD line). Both slices are aligned to the
// input length with NaN warm-up prefixes.
func MACD(prices []float64, fast, slow, signal int) (line, signalLine []float64) {
	line = nanSlice(len(prices))
	signalLine = nanSlice(len(prices))

	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)

	for i := range prices {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// Signal line is an EMA over the defined portion of the MACD line.
	start := firstDefined(line)
	if start < 0 || len(line)-start < signal {
		return line, signalLine
	}

	sig := EMA(line[start:], signal)
	copy(signalLine[start:], sig)

	return line, signalLine
}

// firstDefined returns the index of the first non-NaN value, or -1
func firstDefined(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}
