package calculator

import (
	"errors"
	"fmt"
)

// Change returns the absolute and percent change of current against previous.
func Change(current, previous float64) (abs, pct float64, err error) {
	if previous == 0 {
		return 0, 0, errors.New("previous value must be non-zero")
	}
	abs = current - previous
	return abs, abs / previous * 100, nil
}

// PreviousClose returns the last valid close before the final one. Zero
// closes mark missing bars (holidays) and are skipped.
func PreviousClose(closes []float64) (float64, error) {
	valid := make([]float64, 0, len(closes))
	for _, c := range closes {
		if c > 0 {
			valid = append(valid, c)
		}
	}
	if len(valid) < 2 {
		return 0, fmt.Errorf("need at least 2 closes, got %d", len(valid))
	}
	return valid[len(valid)-2], nil
}

// FormatPercent renders a percent change the way upstream sites print it.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
