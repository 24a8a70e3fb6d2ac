package progression

import "fmt"

// TargetKind distinguishes skill-level from subskill-level ratings.
type TargetKind uint8

const (
	TargetSkill TargetKind = iota + 1
	TargetSubskill
)

func (k TargetKind) String() string {
	switch k {
	case TargetSkill:
		return "skill"
	case TargetSubskill:
		return "subskill"
	}
	return "unknown"
}

// Target identifies the single item a rating record is about: either a
// skill as a whole or one of its subskills. The zero value is invalid.
type Target struct {
	kind TargetKind
	id   uint
}

// SkillTarget refers to a skill rated as a whole.
func SkillTarget(skillID uint) Target { return Target{kind: TargetSkill, id: skillID} }

// SubskillTarget refers to a single subskill.
func SubskillTarget(subskillID uint) Target { return Target{kind: TargetSubskill, id: subskillID} }

// TargetFromIDs builds a Target from nullable storage columns. A present
// subskill id always wins over the skill id.
func TargetFromIDs(skillID uint, subskillID *uint) Target {
	if subskillID != nil {
		return SubskillTarget(*subskillID)
	}
	return SkillTarget(skillID)
}

func (t Target) Kind() TargetKind { return t.kind }
func (t Target) ID() uint         { return t.id }
func (t Target) IsSkill() bool    { return t.kind == TargetSkill }
func (t Target) IsSubskill() bool { return t.kind == TargetSubskill }
func (t Target) Valid() bool      { return (t.kind == TargetSkill || t.kind == TargetSubskill) && t.id != 0 }

func (t Target) String() string { return fmt.Sprintf("%s:%d", t.kind, t.id) }
