package core

import "time"

// Bar represents one daily OHLCV candle.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// IsValid checks basic OHLC consistency: positive close, high not below
// low, and close inside the day's range.
func (b Bar) IsValid() bool {
	if b.Close <= 0 || b.High < b.Low {
		return false
	}
	return b.Close >= b.Low && b.Close <= b.High
}

// Day strips the time-of-day part so bars from different feeds compare equal.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
