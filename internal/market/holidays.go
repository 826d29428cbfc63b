package market

import "time"

// nseHolidays lists weekday exchange holidays. They annotate an evaluation
// and never block it.
// Source: NSE India official holiday list (equity segment) for each year.
// Dates the exchange published as tentative are left out until confirmed.
var nseHolidays = map[string]string{
	// 2025
	"2025-02-26": "Mahashivratri",
	"2025-03-14": "Holi",
	"2025-03-31": "Id-ul-Fitr (Ramadan Eid)",
	"2025-04-10": "Shri Mahavir Jayanti",
	"2025-04-14": "Dr. Baba Saheb Ambedkar Jayanti",
	"2025-04-18": "Good Friday",
	"2025-05-01": "Maharashtra Day",
	"2025-08-15": "Independence Day",
	"2025-08-27": "Ganesh Chaturthi",
	"2025-10-02": "Mahatma Gandhi Jayanti / Dussehra",
	"2025-10-21": "Diwali Laxmi Pujan",
	"2025-10-22": "Diwali Balipratipada",
	"2025-11-05": "Guru Nanak Jayanti",
	"2025-12-25": "Christmas",

	// 2026
	"2026-01-26": "Republic Day",
	"2026-04-06": "Mahavir Jayanti",
	"2026-04-10": "Good Friday",
	"2026-04-14": "Dr. Ambedkar Jayanti",
	"2026-05-01": "Maharashtra Day",
	"2026-10-02": "Mahatma Gandhi Jayanti",
	"2026-10-20": "Dussehra",
	"2026-11-19": "Guru Nanak Jayanti",
	"2026-12-25": "Christmas",
}

// Holiday returns the holiday name if t's IST date is an NSE holiday.
func Holiday(t time.Time) (string, bool) {
	name, ok := nseHolidays[dateKey(t)]
	return name, ok
}

// IsWeekend reports whether t falls on Saturday or Sunday in IST.
func IsWeekend(t time.Time) bool {
	switch t.In(IST).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// IsTradingDay reports whether the exchange is open on t's IST date
// according to the holiday list.
func IsTradingDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	_, holiday := Holiday(t)
	return !holiday
}

func dateKey(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}
