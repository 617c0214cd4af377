package main

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

// durationStatistics summarizes measured validation durations.
type durationStatistics struct {
	Mean, Q50, Q95, Max time.Duration
}

// calculateDurationStatistics computes statistics over durations given in
// seconds.
func calculateDurationStatistics(durations []float64) durationStatistics {
	if len(durations) == 0 {
		return durationStatistics{}
	}

	sort.Float64s(durations)
	return durationStatistics{
		Mean: secondsToDuration(floats.Sum(durations) / float64(len(durations))),
		Q50:  secondsToDuration(durations[len(durations)/2]),
		Q95:  secondsToDuration(durations[int(float64(len(durations))*0.95)]),
		Max:  secondsToDuration(durations[len(durations)-1]),
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond)
}
