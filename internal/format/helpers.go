package format

import (
	"fmt"
	"time"
)

// Percent renders a 0..1 score as "85.00%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// SignedPercent renders a 0..1 delta as "+12.34%" / "-3.00%".
func SignedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}

// SignedPoints renders an already-scaled percentage as "+14.5%".
func SignedPoints(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// FmtDuration formats a duration as "Xm Ys" or "Y.Zs".
func FmtDuration(d time.Duration) string {
	s := d.Seconds()
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", int(s)/60, int(s)%60)
	}
	return fmt.Sprintf("%.1fs", s)
}
