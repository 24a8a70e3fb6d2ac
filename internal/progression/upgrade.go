package progression

import (
	"fmt"
	"time"
)

// Reasons returned with a denied Decision.
const (
	ReasonHighLocked  = "High rating is permanently locked"
	ReasonUpgradeOnly = "You can only upgrade to higher ratings"
)

// Decision is the outcome of an upgrade check. DaysLeft is only set when
// the cool-down is still running.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	DaysLeft int    `json:"days_left,omitempty"`
}

// CanUpgrade decides whether a rating currently at current (nil when the item
// was never rated) with the given status may be changed to target at now.
//
// Only approved ratings are restricted. An approved high rating is locked,
// an approved rating can only move upwards, and not before nextUpgrade.
func CanUpgrade(current *Level, target Level, status Status, nextUpgrade *time.Time, now time.Time) (Decision, error) {
	targetWeight, err := target.OrdinalWeight()
	if err != nil {
		return Decision{}, err
	}
	if current == nil {
		return Decision{Allowed: true}, nil
	}
	if !status.Valid() {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	currentWeight, err := current.OrdinalWeight()
	if err != nil {
		return Decision{}, err
	}

	// Drafts, pending submissions and rejected ratings are freely editable.
	if status != StatusApproved {
		return Decision{Allowed: true}, nil
	}

	if *current == LevelHigh {
		return Decision{Allowed: false, Reason: ReasonHighLocked}, nil
	}
	if targetWeight <= currentWeight {
		return Decision{Allowed: false, Reason: ReasonUpgradeOnly}, nil
	}
	if cooling, daysLeft := coolDownActive(nextUpgrade, now); cooling {
		return Decision{
			Allowed:  false,
			Reason:   fmt.Sprintf("You can upgrade this subskill after %d days", daysLeft),
			DaysLeft: daysLeft,
		}, nil
	}
	return Decision{Allowed: true}, nil
}

// coolDownActive reports whether now is strictly before nextUpgrade and, if
// so, how many started days remain.
func coolDownActive(nextUpgrade *time.Time, now time.Time) (bool, int) {
	if nextUpgrade == nil || !now.Before(*nextUpgrade) {
		return false, 0
	}
	remaining := nextUpgrade.Sub(now)
	const day = 24 * time.Hour
	days := int(remaining / day)
	if remaining%day != 0 {
		days++
	}
	return true, days
}

// NextUpgradeDate returns when an approved rating becomes upgradable again.
// High ratings never do, so nil is returned for them.
func NextUpgradeDate(level Level, approvedAt time.Time, coolDown time.Duration) *time.Time {
	if level == LevelHigh || coolDown <= 0 {
		return nil
	}
	next := approvedAt.Add(coolDown)
	return &next
}
