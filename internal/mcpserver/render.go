package mcpserver

import (
	"fmt"
	"strconv"

	"github.com/akansha-code/volumemcpserver/internal/domain/volume"
)

// StatusText renders a reading as the one-line get_volume reply. The shape is
// a stable contract; clients parse it, so it changes for no one.
func StatusText(st volume.Status) string {
	return fmt.Sprintf("Volume: %s%% | Muted: %s | dB: %s",
		percent(st.Percentage), yesNo(st.Muted), decibels(st.Decibels))
}

func setText(res volume.SetResult) string {
	return fmt.Sprintf("Volume set to %s%% (requested: %s%%)",
		percent(res.ActualPercentage), requested(res.RequestedPercentage))
}

func errorText(err error) string {
	return "Error: " + err.Error()
}

// percent keeps the single rounded decimal, "57.0" rather than "57".
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// decibels keeps both rounded decimals, "-6.00" rather than "-6".
func decibels(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// requested echoes the caller's number back without padding: "30", "62.5".
func requested(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
