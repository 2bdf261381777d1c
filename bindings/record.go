package bindings

import (
	"sync"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/internal/telemetry"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/shadow"
)

// Kind distinguishes input Binding Records (refreshed from the runtime
// every sync) from output ones (only ever written to, via haptics).
type Kind int

// The two Binding Record kinds, per spec.md §4.4.1.
const (
	KindInput Kind = iota
	KindOutput
)

// Record is one Binding Record: the state of a single (shadow action, user
// path) pair, guarded by its own reader-writer lock per spec.md §5 ("Each
// Binding Record's mutable state is guarded by its own reader-writer
// lock"). Never hold two Records' locks at once.
type Record struct {
	LeafPath      string
	UserPath      string
	UserPathAtom  runtimeabi.Path
	ShadowAction  *shadow.Action
	ActionType    catalog.ActionType
	Kind          Kind

	// referenced is set once, during attach, when this record is pulled
	// into some application action's binding view. Unreferenced records
	// are never refreshed (spec.md §4.4.3 step 2: "currently referenced,
	// i.e. strong-count > 1").
	referenced bool

	mu         sync.RWMutex
	boolState  runtimeabi.StateBoolean
	floatState runtimeabi.StateFloat
	vec2State  runtimeabi.StateVector2
	poseActive bool
}

// refresh queries the runtime for this record's current state and stores
// it under the record's own write lock, per spec.md §4.4.3 step 2's
// ordering ("read runtime -> take write lock -> copy fields -> release
// lock"). Output records are never refreshed.
func (r *Record) refresh(rt runtimeabi.Runtime, session runtimeabi.Handle) error {
	switch r.ActionType {
	case catalog.ActionTypeBoolean:
		st, err := rt.GetActionStateBoolean(session, r.ShadowAction.Handle, r.UserPathAtom)
		if err != nil {
			return err
		}
		r.mu.Lock()
		warnIfTimeTravel(r.LeafPath, r.boolState.LastChangeTime, st.LastChangeTime)
		r.boolState = st
		r.mu.Unlock()
	case catalog.ActionTypeFloat:
		st, err := rt.GetActionStateFloat(session, r.ShadowAction.Handle, r.UserPathAtom)
		if err != nil {
			return err
		}
		r.mu.Lock()
		warnIfTimeTravel(r.LeafPath, r.floatState.LastChangeTime, st.LastChangeTime)
		r.floatState = st
		r.mu.Unlock()
	case catalog.ActionTypeVector2:
		st, err := rt.GetActionStateVector2(session, r.ShadowAction.Handle, r.UserPathAtom)
		if err != nil {
			return err
		}
		r.mu.Lock()
		warnIfTimeTravel(r.LeafPath, r.vec2State.LastChangeTime, st.LastChangeTime)
		r.vec2State = st
		r.mu.Unlock()
	case catalog.ActionTypePose:
		st, err := rt.GetActionStatePose(session, r.ShadowAction.Handle, r.UserPathAtom)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.poseActive = st.IsActive
		r.mu.Unlock()
	}
	return nil
}

// warnIfTimeTravel logs when a newly observed last-change-time would move
// backwards; an unchanged time is not logged. All builds accept the newer
// value regardless, since
// asserting inside a per-frame sync path reached from foreign callers is
// unacceptable (see SPEC_FULL.md's Open Question decision).
func warnIfTimeTravel(leafPath string, old, new_ runtimeabi.Time) {
	if old != 0 && new_ < old {
		telemetry.Log.WithField("leaf_path", leafPath).
			WithField("old", old).WithField("new", new_).
			Warn("bindings: runtime reported a last-change-time earlier than the previous sync")
	}
}

// boolValue returns this record's state coerced to boolean, per spec.md
// §4.4.4: booleans pass through, floats coerce via |x| > 0.5. Any other
// type cannot contribute to a boolean aggregation.
func (r *Record) boolValue() (isActive, value bool, changeTime runtimeabi.Time, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch r.ActionType {
	case catalog.ActionTypeBoolean:
		return r.boolState.IsActive, r.boolState.Current, r.boolState.LastChangeTime, true
	case catalog.ActionTypeFloat:
		v := r.floatState.Current
		return r.floatState.IsActive, v > 0.5 || v < -0.5, r.floatState.LastChangeTime, true
	default:
		return false, false, 0, false
	}
}

// floatValue returns this record's state coerced to float: floats pass
// through, booleans coerce to 0.0/1.0.
func (r *Record) floatValue() (isActive bool, value float32, changeTime runtimeabi.Time, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch r.ActionType {
	case catalog.ActionTypeFloat:
		return r.floatState.IsActive, r.floatState.Current, r.floatState.LastChangeTime, true
	case catalog.ActionTypeBoolean:
		v := float32(0)
		if r.boolState.Current {
			v = 1
		}
		return r.boolState.IsActive, v, r.boolState.LastChangeTime, true
	default:
		return false, 0, 0, false
	}
}

// vector2Value returns this record's vector2 state. Vector2 never coerces.
func (r *Record) vector2Value() (isActive bool, x, y float32, changeTime runtimeabi.Time, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ActionType != catalog.ActionTypeVector2 {
		return false, 0, 0, 0, false
	}
	return r.vec2State.IsActive, r.vec2State.X, r.vec2State.Y, r.vec2State.LastChangeTime, true
}

// poseActiveValue reports whether this record's pose source is active.
func (r *Record) poseActiveValue() (isActive, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ActionType != catalog.ActionTypePose {
		return false, false
	}
	return r.poseActive, true
}

// PoseActive reports whether this record currently has an active pose
// source, for the Action-Space Rebinder's binding scan.
func (r *Record) PoseActive() bool {
	isActive, _ := r.poseActiveValue()
	return isActive
}
