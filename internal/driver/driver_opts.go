package driver

import "time"

// MudDriverOpt configures a MudDriver.
type MudDriverOpt func(*MudDriver)

// WithTickLength sets the time between ticks. Lengths that are not positive
// are ignored and the current length is kept.
func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
