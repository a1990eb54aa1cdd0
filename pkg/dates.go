package pkg

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseOptionalDate parses a YYYY-MM-DD value. An empty value gives a nil date.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &date, nil
}
