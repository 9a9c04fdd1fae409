package assemble

import (
	"regexp"
	"strconv"
	"time"
)

// UponReceipt is the due-date text used when the profile's payment terms
// carry no parseable interval.
const UponReceipt = "Upon Receipt"

// netTermsRe tolerantly matches "Net 30", "net-14", "NET7" and similar.
var netTermsRe = regexp.MustCompile(`(?i)\bnet\s*-?\s*(\d+)`)

// DueDate derives a due date from free-text payment terms by adding the
// "Net N" interval to now. Unparseable or missing terms yield a nil date
// and the "Upon Receipt" sentinel; this is never a failure.
func DueDate(terms string, now time.Time) (*time.Time, string) {
	m := netTermsRe.FindStringSubmatch(terms)
	if m == nil {
		return nil, UponReceipt
	}
	days, err := strconv.Atoi(m[1])
	if err != nil || days <= 0 {
		return nil, UponReceipt
	}
	due := now.AddDate(0, 0, days)
	return &due, due.Format(dateLayout)
}
