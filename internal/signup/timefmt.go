package signup

import "time"

type TimeFormatter interface {
	FormatRange(start time.Time, duration *int) string
}

const (
	DefaultShiftDateLayout = "Mon Jan 2, 2006"
	DefaultShiftTimeLayout = "15:04"
)

// ShiftFormatter renders a shift as "date start–end". Duration is in minutes.
type ShiftFormatter struct {
	dateLayout string
	timeLayout string
}

func NewShiftFormatter(dateLayout, timeLayout string) *ShiftFormatter {
	if dateLayout == "" {
		dateLayout = DefaultShiftDateLayout
	}
	if timeLayout == "" {
		timeLayout = DefaultShiftTimeLayout
	}

	return &ShiftFormatter{dateLayout: dateLayout, timeLayout: timeLayout}
}

func (f *ShiftFormatter) FormatRange(start time.Time, duration *int) string {
	startLabel := start.Format(f.dateLayout) + " " + start.Format(f.timeLayout)

	if duration == nil || *duration <= 0 {
		return startLabel
	}

	end := start.Add(time.Duration(*duration) * time.Minute)

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy == ey && sm == em && sd == ed {
		return startLabel + "–" + end.Format(f.timeLayout)
	}

	return startLabel + " – " + end.Format(f.dateLayout) + " " + end.Format(f.timeLayout)
}
