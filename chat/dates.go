package chat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IsSameDay reports whether a and b fall on the same calendar day. Each value
// is read in its own location; no zone conversion happens.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether d is on the same calendar day as now.
func IsToday(d, now time.Time) bool {
	return IsSameDay(d, now)
}

// IsYesterday reports whether d is on the calendar day before now. Uses
// calendar arithmetic so month and year boundaries roll over correctly.
func IsYesterday(d, now time.Time) bool {
	return IsSameDay(d, now.AddDate(0, 0, -1))
}

// StartOfDay returns midnight of d's calendar day in d's location.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// TimeDifferenceMs returns |a-b| in whole milliseconds.
func TimeDifferenceMs(a, b time.Time) int64 {
	diff := a.Sub(b).Milliseconds()
	if diff < 0 {
		return -diff
	}
	return diff
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthNamesShort = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var dayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var dayNamesShort = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Token sets, longest first within each shared prefix so the scanner never
// splits MMMM into MM+MM.
var (
	dateTokens = []string{"yyyy", "MMMM", "MMM", "MM", "M", "EEEE", "EEE", "dd", "d"}
	timeTokens = []string{"HH", "H", "hh", "h", "mm", "m", "ss", "s", "a"}
)

// span is one piece of a tokenized pattern: either a recognized token or a
// literal run of text.
type span struct {
	token   string
	literal string
}

// tokenize splits pattern into spans in a single left-to-right scan. At each
// position the first (longest) matching token wins; anything else is
// accumulated as literal text.
func tokenize(pattern string, tokens []string) []span {
	var spans []span
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			spans = append(spans, span{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		matched := ""
		for _, tok := range tokens {
			if strings.HasPrefix(pattern[i:], tok) {
				matched = tok
				break
			}
		}
		if matched == "" {
			lit.WriteByte(pattern[i])
			i++
			continue
		}
		flush()
		spans = append(spans, span{token: matched})
		i += len(matched)
	}
	flush()
	return spans
}

// render joins spans, resolving each token through value.
func render(spans []span, value func(token string) string) string {
	var b strings.Builder
	for _, s := range spans {
		if s.token == "" {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(value(s.token))
	}
	return b.String()
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatDate substitutes calendar tokens into pattern:
//
//	yyyy  4-digit year        2025
//	MMMM  full month          January
//	MMM   short month         Jan
//	MM    padded month        01
//	M     month               1
//	EEEE  full weekday        Sunday
//	EEE   short weekday       Sun
//	dd    padded day          05
//	d     day                 5
//
// Unrecognized characters are copied through unchanged.
func FormatDate(d time.Time, pattern string) string {
	year, month, day := d.Date()
	weekday := d.Weekday()

	return render(tokenize(pattern, dateTokens), func(tok string) string {
		switch tok {
		case "yyyy":
			return strconv.Itoa(year)
		case "MMMM":
			return monthNames[month-1]
		case "MMM":
			return monthNamesShort[month-1]
		case "MM":
			return pad2(int(month))
		case "M":
			return strconv.Itoa(int(month))
		case "EEEE":
			return dayNames[weekday]
		case "EEE":
			return dayNamesShort[weekday]
		case "dd":
			return pad2(day)
		case "d":
			return strconv.Itoa(day)
		}
		return tok
	})
}

// FormatTime substitutes clock tokens into pattern: HH/H (24-hour), hh/h
// (12-hour, midnight and noon both 12), mm/m, ss/s, and a (AM/PM).
func FormatTime(d time.Time, pattern string) string {
	hours24, minutes, seconds := d.Clock()
	hours12 := hours24 % 12
	if hours12 == 0 {
		hours12 = 12
	}
	ampm := "AM"
	if hours24 >= 12 {
		ampm = "PM"
	}

	return render(tokenize(pattern, timeTokens), func(tok string) string {
		switch tok {
		case "HH":
			return pad2(hours24)
		case "H":
			return strconv.Itoa(hours24)
		case "hh":
			return pad2(hours12)
		case "h":
			return strconv.Itoa(hours12)
		case "mm":
			return pad2(minutes)
		case "m":
			return strconv.Itoa(minutes)
		case "ss":
			return pad2(seconds)
		case "s":
			return strconv.Itoa(seconds)
		case "a":
			return ampm
		}
		return tok
	})
}

// RelativeTime humanizes the time elapsed between d and now:
//
//	[0, 60s)      "Just now"
//	[1m, 60m)     "N minute(s) ago"
//	[1h, 24h)     "N hour(s) ago"
//	24h and up    d formatted as HH:mm
//
// Timestamps in the future read as "Just now".
func RelativeTime(d, now time.Time) string {
	seconds := int64(now.Sub(d) / time.Second)
	minutes := seconds / 60
	hours := minutes / 60

	switch {
	case seconds < 60:
		return "Just now"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	default:
		return FormatTime(d, "HH:mm")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DateSeparatorLabels are the words used for the two most recent days.
type DateSeparatorLabels struct {
	Today     string
	Yesterday string
}

// DateSeparatorLabel returns the heading shown above a day's messages:
// labels.Today, labels.Yesterday, or day formatted with dateFormat.
func DateSeparatorLabel(day, now time.Time, labels DateSeparatorLabels, dateFormat string) string {
	switch {
	case IsToday(day, now):
		return labels.Today
	case IsYesterday(day, now):
		return labels.Yesterday
	default:
		return FormatDate(day, dateFormat)
	}
}
