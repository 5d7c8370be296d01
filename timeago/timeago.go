// Package timeago formats elapsed time as relative words ("3 minutes ago").
package timeago

import (
	"fmt"
	"math"
	"time"
)

// Layouts accepted by Parse, tried in order
var Layouts = []string{
	"Jan 2, 2006 15:04:05 MST",
	time.RubyDate,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
}

// Minute thresholds
const (
	hour      = 60
	day       = 1440
	twoDays   = 2880
	month     = 43200
	twoMonths = 86400
	year      = 525960
	twoYears  = 1051199
)

// Between describes the distance from "from" to "to" in words
func Between(to, from time.Time) string {
	minutes := int(math.Floor(to.Sub(from).Minutes()))

	switch {
	case minutes == 0:
		return "less than a minute ago"
	case minutes == 1:
		return "a minute ago"
	case minutes < 45:
		return fmt.Sprintf("%d minutes ago", minutes)
	case minutes < 90:
		return "about 1 hour ago"
	case minutes < day:
		return fmt.Sprintf("about %d hours ago", minutes/hour)
	case minutes < twoDays:
		return "1 day ago"
	case minutes < month:
		return fmt.Sprintf("%d days ago", minutes/day)
	case minutes < twoMonths:
		return "about 1 month ago"
	case minutes < year:
		return fmt.Sprintf("%d months ago", minutes/month)
	case minutes < twoYears:
		return "about 1 year ago"
	default:
		return fmt.Sprintf("over %d years ago", minutes/year)
	}
}

// Since describes the distance from t to now
func Since(t time.Time) string {
	return Between(time.Now(), t)
}

// Parse reads a timestamp in one of Layouts and describes its distance to now
func Parse(s string) (string, error) {
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Since(t), nil
		}
	}
	return "", fmt.Errorf("timeago: unrecognized timestamp %q", s)
}
