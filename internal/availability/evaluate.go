package availability

import (
	"fmt"
	"time"
)

// Evaluate decides whether a florist can fulfill an order on requestedDate,
// optionally at requestedTime ("HH:MM", empty for no preference).
//
// The evaluator is pure and timezone-naive: now, requestedDate and
// requestedTime are assumed to already be in the florist's local time, and
// all time comparisons are lexicographic on fixed-width "HH:MM" strings.
// Checks run in order: closed day, same-day cutoff, requested time within
// operating hours. A request submitted exactly at the cutoff is accepted.
func Evaluate(hours BusinessHours, settings DeliverySettings, now time.Time, requestedDate time.Time, requestedTime string) Result {
	day, ok := hours[dayKey(requestedDate)]
	if !ok || day.Closed {
		return Result{Reason: fmt.Sprintf("Closed on %s", requestedDate.Weekday())}
	}

	if sameDay(now, requestedDate) {
		if settings.SameDayCutoff == "" {
			return Result{Reason: "Same-day delivery not available"}
		}
		if clockOf(now) > settings.SameDayCutoff {
			return Result{Reason: fmt.Sprintf("Past same-day delivery cutoff (%s)", settings.SameDayCutoff)}
		}
	}

	if requestedTime != "" {
		if requestedTime < day.Open || requestedTime > day.Close {
			return Result{Reason: fmt.Sprintf("Delivery time outside operating hours (%s-%s)", day.Open, day.Close)}
		}
	}

	return Result{Available: true}
}

func clockOf(t time.Time) string {
	return t.Format("15:04")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
