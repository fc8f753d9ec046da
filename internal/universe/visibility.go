package universe

import "fmt"

// VisibilityLevel orders how much of an object an empire can perceive.
type VisibilityLevel int

const (
	VisibilityInvalid VisibilityLevel = iota - 1
	VisibilityNone
	VisibilityBasic
	VisibilityPartial
	VisibilityFull
)

var visibilityNames = map[VisibilityLevel]string{
	VisibilityNone:    "Invisible",
	VisibilityBasic:   "Basic",
	VisibilityPartial: "Partial",
	VisibilityFull:    "Full",
}

func (v VisibilityLevel) String() string {
	if name, ok := visibilityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

func VisibilityByName(name string) (VisibilityLevel, bool) {
	for v, n := range visibilityNames {
		if n == name {
			return v, true
		}
	}
	return VisibilityInvalid, false
}

type visKey struct {
	empireID int
	objectID int
}

// Visibility reports the level an empire currently perceives an object at.
func (u *Universe) Visibility(empireID, objectID int) VisibilityLevel {
	if v, ok := u.visibility[visKey{empireID, objectID}]; ok {
		return v
	}
	return VisibilityNone
}

// SetVisibility records the perceived level directly, used by detection
// updates and applied visibility directives.
func (u *Universe) SetVisibility(empireID, objectID int, v VisibilityLevel) {
	u.visibility[visKey{empireID, objectID}] = v
}

// VisibilityDirective is a deferred visibility override queued by effect
// execution. Eval stays opaque here so the arena does not depend on the
// expression layer; it receives the empire's current level and returns the
// new one.
type VisibilityDirective struct {
	EmpireID int
	ObjectID int
	SourceID int
	Eval     func(current VisibilityLevel) VisibilityLevel
}

// QueueVisibilityDirective defers a visibility override until the post-pass.
func (u *Universe) QueueVisibilityDirective(d VisibilityDirective) {
	u.pendingVisDirectives = append(u.pendingVisDirectives, d)
}

// PendingVisibilityDirectives exposes the queued overrides without draining
// them.
func (u *Universe) PendingVisibilityDirectives() []VisibilityDirective {
	return u.pendingVisDirectives
}

// ApplyVisibilityDirectives runs the queued overrides in order and drains
// the queue. Directives whose object has since been destroyed are dropped.
func (u *Universe) ApplyVisibilityDirectives() {
	for _, d := range u.pendingVisDirectives {
		if u.Object(d.ObjectID) == nil {
			continue
		}
		if d.Eval == nil {
			continue
		}
		u.SetVisibility(d.EmpireID, d.ObjectID, d.Eval(u.Visibility(d.EmpireID, d.ObjectID)))
	}
	u.pendingVisDirectives = nil
}
