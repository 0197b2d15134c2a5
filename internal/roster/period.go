package roster

// Period is a half-month roster span, both ends inclusive.
type Period struct {
	Start Date
	End   Date
	Days  int
}

// ResolvePeriod decides which half of the month a roster starting at
// start covers:
//   - day 1  -> days 1..15 of that month (always 15 days)
//   - day 16 -> day 16..last day of that month (13 to 16 days)
//   - anything else -> 15 days from start
func ResolvePeriod(start Date) Period {
	switch start.Day {
	case 1:
		return Period{
			Start: start,
			End:   NewDate(start.Year, start.Month, 15),
			Days:  15,
		}
	case 16:
		last := start.LastDayOfMonth()
		return Period{
			Start: start,
			End:   NewDate(start.Year, start.Month, last),
			Days:  last - 16 + 1,
		}
	default:
		return Period{
			Start: start,
			End:   start.AddDays(14),
			Days:  15,
		}
	}
}
