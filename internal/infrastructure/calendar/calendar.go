// Package calendar decides which dates service orders may be scheduled on.
// A date is blocked when it lies in the past or falls on a national holiday.
package calendar

import "time"

// Calendar answers blocked-date queries against a fixed national holiday set
// plus any extra dates supplied at construction.
type Calendar struct {
	extra map[string]struct{}
}

// New builds a Calendar. extraDates holds additional blocked days in
// "2006-01-02" form (company closures, regional holidays).
func New(extraDates []string) *Calendar {
	extra := make(map[string]struct{}, len(extraDates))
	for _, d := range extraDates {
		extra[d] = struct{}{}
	}
	return &Calendar{extra: extra}
}

// IsBlockedDate reports whether date is unavailable for scheduling.
// Today is still schedulable; only strictly earlier days count as past.
func (c *Calendar) IsBlockedDate(date time.Time) bool {
	today := truncateDay(time.Now().UTC())
	day := truncateDay(date.UTC())

	if day.Before(today) {
		return true
	}
	if _, ok := c.extra[day.Format("2006-01-02")]; ok {
		return true
	}
	return isNationalHoliday(day)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isNationalHoliday covers the Brazilian national holidays: the fixed-date
// ones plus the Easter-derived movable feasts.
func isNationalHoliday(day time.Time) bool {
	switch [2]int{int(day.Month()), day.Day()} {
	case [2]int{1, 1}, // Confraternização Universal
		[2]int{4, 21},  // Tiradentes
		[2]int{5, 1},   // Dia do Trabalho
		[2]int{9, 7},   // Independência
		[2]int{10, 12}, // Nossa Senhora Aparecida
		[2]int{11, 2},  // Finados
		[2]int{11, 15}, // Proclamação da República
		[2]int{12, 25}: // Natal
		return true
	}

	easter := easterSunday(day.Year())
	switch {
	case day.Equal(easter.AddDate(0, 0, -48)), // Carnaval (segunda)
		day.Equal(easter.AddDate(0, 0, -47)), // Carnaval (terça)
		day.Equal(easter.AddDate(0, 0, -2)),  // Sexta-feira Santa
		day.Equal(easter.AddDate(0, 0, 60)):  // Corpus Christi
		return true
	}
	return false
}

// easterSunday computes Easter for a year using the anonymous Gregorian
// algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
