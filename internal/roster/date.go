package roster

import (
	"fmt"
	"strconv"
	"time"
)

// Date is a plain calendar date. It is always built from an explicit
// (year, month, day) triple or from a strict YYYY-MM-DD string, never
// from locale-aware parsing, so it cannot drift across timezones.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate accepts exactly the YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}

	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: año no numérico", s)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("fecha inválida %q: mes fuera de rango", s)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("fecha inválida %q: día fuera de rango", s)
	}

	d := NewDate(year, time.Month(month), day)
	if d.time().Day() != day {
		// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2)
		return Date{}, fmt.Errorf("fecha inválida %q: el día no existe en ese mes", s)
	}
	return d, nil
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// DayName returns the Spanish weekday name used on the roster grid.
func (d Date) DayName() string {
	return weekdayNames[d.time().Weekday()]
}

// DaysUntil counts the whole days from d to other (positive when other
// is later).
func (d Date) DaysUntil(other Date) int {
	return int(other.time().Sub(d.time()) / (24 * time.Hour))
}

// LastDayOfMonth works for every month length, February in leap years
// included: day 0 of the next month is the last day of this one.
func (d Date) LastDayOfMonth() int {
	return time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
