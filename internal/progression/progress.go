package progression

import (
	"fmt"
	"time"
)

// Tier is the category-level classification shown on dashboards.
type Tier string

const (
	TierBeginner Tier = "beginner"
	TierModerate Tier = "moderate"
	TierExpert   Tier = "expert"
)

const (
	expertThreshold   = 80
	moderateThreshold = 40
)

// TierFor maps a progress percentage to its tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= expertThreshold:
		return TierExpert
	case percentage >= moderateThreshold:
		return TierModerate
	}
	return TierBeginner
}

// Skill is the minimal skill shape needed for scoring.
type Skill struct {
	ID         uint
	CategoryID uint
}

// Subskill is the minimal subskill shape needed for scoring.
type Subskill struct {
	ID      uint
	SkillID uint
}

// Record is one stored rating of a single user.
type Record struct {
	ID            uint
	Target        Target
	Level         Level
	Status        Status
	NotApplicable bool
	NextUpgrade   *time.Time
	CreatedAt     time.Time
}

// RatingCounts holds approved items per level.
type RatingCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Progress is the scoring result for one category and one user.
type Progress struct {
	CategoryID         uint         `json:"category_id"`
	TotalItems         int          `json:"total_items"`
	RatedItems         int          `json:"rated_items"`
	ProgressPercentage int          `json:"progress_percentage"`
	RatingCounts       RatingCounts `json:"rating_counts"`
	ApprovedCount      int          `json:"approved_count"`
	PendingCount       int          `json:"pending_count"`
	RejectedCount      int          `json:"rejected_count"`
	Level              Tier         `json:"level"`
	TotalPoints        int          `json:"total_points"`
	MaxPossiblePoints  int          `json:"max_possible_points"`
}

// itemRecords keeps, per status, the record that represents an item.
type itemRecords struct {
	approved  *Record
	submitted *Record
	rejected  *Record
}

// ComputeProgress scores a user's records against the skills of one category.
//
// Skills with a skill-level record flagged not applicable are ignored. A skill
// with subskills contributes one item per subskill, otherwise the skill itself
// is the item. Each item is classified by its approved record first, then a
// submitted one, then a rejected one. When several records share a status for
// the same item, the most recently created one is used, ties going to the
// higher id, so the result does not depend on the order of records.
func ComputeProgress(categoryID uint, skills []Skill, subskills []Subskill, records []Record) (Progress, error) {
	byTarget := make(map[Target]*itemRecords, len(records))
	notApplicable := make(map[uint]bool)
	for i := range records {
		r := &records[i]
		if r.Target.IsSkill() && r.NotApplicable {
			notApplicable[r.Target.ID()] = true
		}
		entry := byTarget[r.Target]
		if entry == nil {
			entry = &itemRecords{}
			byTarget[r.Target] = entry
		}
		switch r.Status {
		case StatusApproved:
			entry.approved = latest(entry.approved, r)
		case StatusSubmitted:
			entry.submitted = latest(entry.submitted, r)
		case StatusRejected:
			entry.rejected = latest(entry.rejected, r)
		case StatusDraft:
		default:
			return Progress{}, fmt.Errorf("record %d: %w: %q", r.ID, ErrInvalidStatus, string(r.Status))
		}
	}

	subskillsBySkill := make(map[uint][]Subskill)
	for _, ss := range subskills {
		subskillsBySkill[ss.SkillID] = append(subskillsBySkill[ss.SkillID], ss)
	}

	p := Progress{CategoryID: categoryID}
	classify := func(t Target) error {
		p.TotalItems++
		entry := byTarget[t]
		switch {
		case entry == nil:
		case entry.approved != nil:
			points, err := entry.approved.Level.PointWeight()
			if err != nil {
				return fmt.Errorf("record %d: %w", entry.approved.ID, err)
			}
			p.TotalPoints += points
			p.RatedItems++
			p.ApprovedCount++
			switch entry.approved.Level {
			case LevelHigh:
				p.RatingCounts.High++
			case LevelMedium:
				p.RatingCounts.Medium++
			case LevelLow:
				p.RatingCounts.Low++
			}
		case entry.submitted != nil:
			p.PendingCount++
		case entry.rejected != nil:
			p.RejectedCount++
		}
		return nil
	}

	for _, skill := range skills {
		if skill.CategoryID != categoryID || notApplicable[skill.ID] {
			continue
		}
		children := subskillsBySkill[skill.ID]
		if len(children) == 0 {
			if err := classify(SkillTarget(skill.ID)); err != nil {
				return Progress{}, err
			}
			continue
		}
		for _, ss := range children {
			if err := classify(SubskillTarget(ss.ID)); err != nil {
				return Progress{}, err
			}
		}
	}

	p.MaxPossiblePoints = p.TotalItems * MaxPointWeight
	p.ProgressPercentage = percentage(p.TotalPoints, p.MaxPossiblePoints)
	p.Level = TierFor(p.ProgressPercentage)
	return p, nil
}

func latest(current, candidate *Record) *Record {
	if current == nil {
		return candidate
	}
	if candidate.CreatedAt.After(current.CreatedAt) ||
		(candidate.CreatedAt.Equal(current.CreatedAt) && candidate.ID > current.ID) {
		return candidate
	}
	return current
}

// percentage rounds points/max*100 half up, returning 0 for an empty category.
func percentage(points, maxPoints int) int {
	if maxPoints == 0 {
		return 0
	}
	return (points*200 + maxPoints) / (maxPoints * 2)
}
