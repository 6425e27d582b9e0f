package timecalc

import "fmt"

// Duration is an amount of worked time in whole minutes.
type Duration int

// Between returns the minutes from start to end on the same day.
// An end before start yields zero; overnight spans are not tracked.
func Between(start, end TimeOfDay) Duration {
	d := end.SinceMidnight() - start.SinceMidnight()
	if d < 0 {
		return 0
	}
	return Duration(d)
}

func (d Duration) Add(other Duration) Duration { return d + other }

func (d Duration) Hours() int   { return int(d) / minutesPerHour }
func (d Duration) Minutes() int { return int(d) % minutesPerHour }

// HHMM renders d as zero-padded hours and minutes, e.g. "51:00".
func (d Duration) HHMM() string {
	return fmt.Sprintf("%02d:%02d", d.Hours(), d.Minutes())
}

// Decimal renders d as fractional hours rounded half-up to two places, e.g. "1.53".
func (d Duration) Decimal() string {
	hundredths := (int(d)*200 + minutesPerHour) / (2 * minutesPerHour)
	return fmt.Sprintf("%d.%02d", hundredths/100, hundredths%100)
}

func (d Duration) String() string { return d.HHMM() }
