package progression

import (
	"fmt"
	"time"
)

// AvailableOptions returns, in ascending order, the levels a user may pick
// for an item in the given state. A level is listed exactly when CanUpgrade
// would allow it.
func AvailableOptions(current *Level, status Status, nextUpgrade *time.Time, now time.Time) ([]Level, error) {
	if current == nil {
		return allLevels(), nil
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	currentWeight, err := current.OrdinalWeight()
	if err != nil {
		return nil, err
	}
	// Drafts, pending submissions and rejected ratings are freely editable.
	if status != StatusApproved {
		return allLevels(), nil
	}
	if *current == LevelHigh {
		return []Level{}, nil
	}
	if cooling, _ := coolDownActive(nextUpgrade, now); cooling {
		return []Level{}, nil
	}

	options := make([]Level, 0, len(Levels))
	for _, l := range Levels {
		w, _ := l.OrdinalWeight()
		if w > currentWeight {
			options = append(options, l)
		}
	}
	return options, nil
}

func allLevels() []Level {
	out := make([]Level, len(Levels))
	copy(out, Levels)
	return out
}
