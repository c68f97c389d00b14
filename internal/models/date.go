package models

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date - календарная дата без времени, в JSON сериализуется как "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate создаёт дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected format YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// Before сообщает, раньше ли дата d, чем other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
