package timecalc

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	yearMonthLayout = "200601"
)

var (
	datePattern      = regexp.MustCompile(`^(19|20)\d\d-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	yearMonthPattern = regexp.MustCompile(`^((?:19|20)\d\d)-?(0[1-9]|1[0-2])$`)
	weekPattern      = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)
)

// Date is a calendar day in ISO form (YYYY-MM-DD).
//
// Invalid dates are representable: NewDate never fails, callers check
// IsValid or EnsureValid before trusting the value.
type Date struct {
	raw string
}

// NewDate wraps s without validating it.
func NewDate(s string) Date {
	return Date{raw: s}
}

// ParseDate wraps s and validates it.
func ParseDate(s string) (Date, error) {
	d := NewDate(s)
	if err := d.EnsureValid(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// DateOf returns the calendar day of t.
func DateOf(t time.Time) Date {
	return Date{raw: t.Format(dateLayout)}
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// IsValid reports whether d follows the date grammar and names a real day.
func (d Date) IsValid() bool {
	if !datePattern.MatchString(d.raw) {
		return false
	}
	_, err := time.Parse(dateLayout, d.raw)
	return err == nil
}

// EnsureValid returns ErrInvalidDateFormat when d is not valid.
func (d Date) EnsureValid() error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %q does not represent a valid date", ErrInvalidDateFormat, d.raw)
	}
	return nil
}

// IsZero reports whether d was never set.
func (d Date) IsZero() bool { return d.raw == "" }

// Time returns midnight UTC of d. The result is the zero time for invalid dates.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, d.raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// YearMonth returns the storage partition d belongs to.
func (d Date) YearMonth() YearMonth {
	if len(d.raw) < 7 {
		return YearMonth{}
	}
	return YearMonth{raw: d.raw[0:4] + d.raw[5:7]}
}

// Week returns the ISO week containing d.
func (d Date) Week() Week {
	year, week := d.Time().ISOWeek()
	return Week{year: year, week: week}
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Compare orders dates chronologically. Valid ISO dates sort lexically.
func (d Date) Compare(other Date) int {
	switch {
	case d.raw < other.raw:
		return -1
	case d.raw > other.raw:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool { return d.raw < other.raw }
func (d Date) After(other Date) bool  { return d.raw > other.raw }

// Between reports whether d lies in [from, to].
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) String() string { return d.raw }

// YearMonth identifies a monthly storage partition (YYYYMM).
type YearMonth struct {
	raw string
}

// ParseYearMonth accepts YYYYMM or YYYY-MM.
func ParseYearMonth(s string) (YearMonth, error) {
	m := yearMonthPattern.FindStringSubmatch(s)
	if m == nil {
		return YearMonth{}, fmt.Errorf("%w: %q does not represent a valid month", ErrInvalidDateFormat, s)
	}
	return YearMonth{raw: m[1] + m[2]}, nil
}

// CurrentYearMonth returns the partition of today.
func CurrentYearMonth() YearMonth {
	return Today().YearMonth()
}

// FirstDay returns the first day of the month.
func (ym YearMonth) FirstDay() Date {
	t, err := time.Parse(yearMonthLayout, ym.raw)
	if err != nil {
		return Date{}
	}
	return DateOf(t)
}

// LastDay returns the last day of the month.
func (ym YearMonth) LastDay() Date {
	t, err := time.Parse(yearMonthLayout, ym.raw)
	if err != nil {
		return Date{}
	}
	return DateOf(t.AddDate(0, 1, -1))
}

func (ym YearMonth) IsZero() bool   { return ym.raw == "" }
func (ym YearMonth) String() string { return ym.raw }

// Week is an ISO 8601 week (GGGG-Www).
type Week struct {
	year int
	week int
}

// ParseWeek parses a GGGG-Www string and rejects weeks the year does not have.
func ParseWeek(s string) (Week, error) {
	m := weekPattern.FindStringSubmatch(s)
	if m == nil {
		return Week{}, fmt.Errorf("%w: %q does not represent a valid week", ErrInvalidDateFormat, s)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	w := Week{year: year, week: week}
	if week < 1 || week > 53 {
		return Week{}, fmt.Errorf("%w: %q does not represent a valid week", ErrInvalidDateFormat, s)
	}
	if y, n := w.monday().ISOWeek(); y != year || n != week {
		return Week{}, fmt.Errorf("%w: %d has no week %d", ErrInvalidDateFormat, year, week)
	}
	return w, nil
}

// CurrentWeek returns the ISO week of today.
func CurrentWeek() Week {
	return Today().Week()
}

// Start returns the Monday of the week.
func (w Week) Start() Date { return DateOf(w.monday()) }

// End returns the Sunday of the week.
func (w Week) End() Date { return DateOf(w.monday().AddDate(0, 0, 6)) }

// monday uses the rule that January 4th always falls into week 1.
func (w Week) monday() time.Time {
	jan4 := time.Date(w.year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1 := jan4.AddDate(0, 0, -(wd - 1))
	return week1.AddDate(0, 0, (w.week-1)*7)
}

func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.year, w.week)
}
