package schedule

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// Named label schemes.
const (
	SchemeISO      = "yyyy-mm-dd"
	SchemeDayMonth = "dd/mm"
	SchemeMonthDay = "mm/dd"
)

// DefaultScheme is used when no date_format is configured.
const DefaultScheme = SchemeISO

// FormatLabel renders date for display in a block name. Any scheme other than
// the named ones is treated as a strftime pattern, e.g. "%b %d".
func FormatLabel(date time.Time, scheme string) string {
	date = date.UTC()
	switch scheme {
	case "", SchemeISO:
		return date.Format("2006-01-02")
	case SchemeDayMonth:
		return date.Format("02/01")
	case SchemeMonthDay:
		return date.Format("01/02")
	default:
		return strftime.Format(scheme, date)
	}
}
