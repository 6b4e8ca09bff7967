package availability

import (
	"fmt"
	"strings"
	"time"
)

// DayHours is the operating window for a single weekday. Open and Close are
// zero-padded 24-hour "HH:MM" strings in the florist's local time.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// BusinessHours maps lowercase weekday names ("monday".."sunday") to that
// day's operating window. A missing day counts as closed.
type BusinessHours map[string]DayHours

// DistanceType selects how delivery eligibility distance is measured.
type DistanceType string

const (
	DistanceRadius  DistanceType = "radius"
	DistanceDriving DistanceType = "driving"
)

// DeliverySettings is a florist's delivery configuration.
//
// NextDayCutoffEnabled and NextDayCutoff are stored and validated but not
// enforced by Evaluate; next-day cutoff semantics are an unspecified
// extension point.
type DeliverySettings struct {
	RadiusKm             float64      `json:"radius_km"`
	FeePerOrder          float64      `json:"fee_per_order"`
	MinimumOrder         float64      `json:"minimum_order"`
	SameDayCutoff        string       `json:"same_day_cutoff,omitempty"`
	NextDayCutoffEnabled bool         `json:"next_day_cutoff_enabled"`
	NextDayCutoff        string       `json:"next_day_cutoff,omitempty"`
	DistanceType         DistanceType `json:"distance_type"`
}

// DeliverySlot is a named delivery window a customer can pick at checkout.
type DeliverySlot struct {
	Name      string `json:"name"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Enabled   bool   `json:"enabled"`
	MaxOrders int    `json:"max_orders"`
}

// Result is the outcome of an availability evaluation. Unavailability is an
// expected outcome and is reported as data, never as an error.
type Result struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func dayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// validClock reports whether s is a zero-padded 24-hour "HH:MM" string.
// The fixed width is what makes lexicographic time comparison safe.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[:2] <= "23" && s[3:] <= "59"
}

// Validate checks that every configured day has a well-formed window.
// Overnight spans are not supported: close must be strictly after open.
func (h BusinessHours) Validate() error {
	for day, hours := range h {
		if !knownWeekday(day) {
			return fmt.Errorf("business hours: unknown weekday %q", day)
		}
		if hours.Closed {
			continue
		}
		if !validClock(hours.Open) {
			return fmt.Errorf("business hours: %s open time %q is not HH:MM", day, hours.Open)
		}
		if !validClock(hours.Close) {
			return fmt.Errorf("business hours: %s close time %q is not HH:MM", day, hours.Close)
		}
		if hours.Close <= hours.Open {
			return fmt.Errorf("business hours: %s closes at %s, not after open %s", day, hours.Close, hours.Open)
		}
	}
	return nil
}

func knownWeekday(day string) bool {
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks radius bounds, cutoff formats and the distance type.
func (s DeliverySettings) Validate() error {
	if s.RadiusKm <= 0 || s.RadiusKm > 100 {
		return fmt.Errorf("delivery settings: radius %.2f km outside (0, 100]", s.RadiusKm)
	}
	if s.SameDayCutoff != "" && !validClock(s.SameDayCutoff) {
		return fmt.Errorf("delivery settings: same-day cutoff %q is not HH:MM", s.SameDayCutoff)
	}
	if s.NextDayCutoffEnabled && !validClock(s.NextDayCutoff) {
		return fmt.Errorf("delivery settings: next-day cutoff %q is not HH:MM", s.NextDayCutoff)
	}
	switch s.DistanceType {
	case DistanceRadius, DistanceDriving:
	default:
		return fmt.Errorf("delivery settings: unknown distance type %q", s.DistanceType)
	}
	return nil
}

// Validate checks the slot window and capacity.
func (s DeliverySlot) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("delivery slot: name is required")
	}
	if !validClock(s.Start) {
		return fmt.Errorf("delivery slot %s: start time %q is not HH:MM", s.Name, s.Start)
	}
	if !validClock(s.End) {
		return fmt.Errorf("delivery slot %s: end time %q is not HH:MM", s.Name, s.End)
	}
	if s.End <= s.Start {
		return fmt.Errorf("delivery slot %s: end %s is not after start %s", s.Name, s.End, s.Start)
	}
	if s.MaxOrders < 1 {
		return fmt.Errorf("delivery slot %s: max orders must be at least 1", s.Name)
	}
	return nil
}

// ValidateSlots validates each slot and rejects duplicate names.
func ValidateSlots(slots []DeliverySlot) error {
	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return err
		}
		if seen[slot.Name] {
			return fmt.Errorf("delivery slot %s: duplicate name", slot.Name)
		}
		seen[slot.Name] = true
	}
	return nil
}

// SlotByName finds an enabled slot by name.
func SlotByName(slots []DeliverySlot, name string) (DeliverySlot, bool) {
	for _, slot := range slots {
		if slot.Name == name && slot.Enabled {
			return slot, true
		}
	}
	return DeliverySlot{}, false
}
