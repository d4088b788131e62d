package sim

import (
	"math"
	"time"
)

// ROIPerMinute is the per-minute compound rate, in percent, that turns
// initialCash into netWorth over elapsed. It reports false when no finite
// rate exists, e.g. before any time has passed.
func ROIPerMinute(netWorth, initialCash float64, elapsed time.Duration) (float64, bool) {
	minutes := elapsed.Seconds() / 60
	if minutes <= 0 {
		return 0, false
	}
	growth := netWorth / initialCash
	roi := (math.Pow(growth, 1/minutes) - 1) * 100
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return 0, false
	}
	return roi, true
}
