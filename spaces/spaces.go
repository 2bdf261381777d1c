// Package spaces implements the Action-Space Rebinder: the
// Lazy/Bound/Dormant state machine that lazily creates and destroys a
// runtime space as an action's active physical source changes, per
// spec.md §4.5. Grounded in layer/src/wrappers/space.rs's ActionSpace
// wrapper for the state shape, and in the teacher's render.Cache
// (tui/runtime/render/cache.go) for the lazily-created/destroyed resource
// pattern generalized here from a cache entry to a runtime handle.
package spaces

import (
	"sync"

	"github.com/sorenxr/xrshadow/bindings"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/xrerr"
)

type state int

const (
	stateLazy state = iota
	stateBound
	stateDormant
)

// Space is one action space: a pose that follows whichever physical
// source is currently active among its owning action's pose bindings for
// a given user path.
type Space struct {
	rt             runtimeabi.Runtime
	session        runtimeabi.Handle
	action         *bindings.Action
	userPath       string
	poseInAction   runtimeabi.Pose

	mu      sync.RWMutex
	st      state
	runtime runtimeabi.Handle // valid only when st == stateBound
	bound   *bindings.Record  // the binding this space is currently derived from
}

// New creates a space in the Lazy state. No runtime space exists until the
// first sync finds an active pose binding.
func New(rt runtimeabi.Runtime, session runtimeabi.Handle, action *bindings.Action, userPath string, poseInAction runtimeabi.Pose) *Space {
	return &Space{
		rt:           rt,
		session:      session,
		action:       action,
		userPath:     userPath,
		poseInAction: poseInAction,
		st:           stateLazy,
	}
}

// Resync runs one sync step of the state machine, per spec.md §4.5's
// transition table. It is the sole writer of the space's current-binding
// state (spec.md §5).
func (s *Space) Resync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st == stateBound {
		if recordActive(s.bound) {
			return nil
		}
		if err := s.rt.DestroySpace(s.runtime); err != nil {
			return xrerr.Wrap(xrerr.RuntimeFailure, err, "destroy_space")
		}
		s.runtime = runtimeabi.NullHandle
		s.bound = nil
		s.st = stateDormant
		return nil
	}

	// Lazy or Dormant: look for the first active pose binding for this
	// user path.
	view := s.action.BindingView()
	if view == nil {
		return nil
	}
	key := s.userPath
	if view.Singleton {
		key = ""
	}
	for _, rec := range view.BySlot[key] {
		if recordActive(rec) {
			handle, err := s.rt.CreateActionSpace(s.session, rec.ShadowAction.Handle, rec.UserPathAtom, s.poseInAction)
			if err != nil {
				return xrerr.Wrap(xrerr.RuntimeFailure, err, "create_action_space")
			}
			s.runtime = handle
			s.bound = rec
			s.st = stateBound
			return nil
		}
	}
	return nil
}

// recordActive reports whether a pose Binding Record currently has an
// active physical source. bindings.Record keeps this private; spaces asks
// through the exported Record.PoseActive accessor instead of duplicating
// the runtime call.
func recordActive(rec *bindings.Record) bool {
	if rec == nil {
		return false
	}
	return rec.PoseActive()
}

// Locate forwards to the runtime if Bound, or synthesizes the empty
// location (zero flags, identity pose) if Lazy/Dormant, per spec.md §4.5.
func (s *Space) Locate(baseSpace runtimeabi.Handle, t runtimeabi.Time) (runtimeabi.SpaceLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.st != stateBound {
		return runtimeabi.EmptyLocation, nil
	}
	loc, err := s.rt.LocateSpace(s.runtime, baseSpace, t)
	if err != nil {
		return runtimeabi.SpaceLocation{}, xrerr.Wrap(xrerr.RuntimeFailure, err, "locate_space")
	}
	return loc, nil
}

// RuntimeHandle returns the handle to substitute into locate-views calls,
// or NullHandle with ok=false if this space is not currently Bound — the
// caller falls back to EmptyLocation in that case.
func (s *Space) RuntimeHandle() (runtimeabi.Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.st != stateBound {
		return runtimeabi.NullHandle, false
	}
	return s.runtime, true
}

// Destroy destroys any currently-Bound runtime space, per spec.md §4.5's
// closing sentence. Safe to call more than once.
func (s *Space) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st != stateBound {
		return nil
	}
	if err := s.rt.DestroySpace(s.runtime); err != nil {
		return xrerr.Wrap(xrerr.RuntimeFailure, err, "destroy_space")
	}
	s.runtime = runtimeabi.NullHandle
	s.bound = nil
	s.st = stateDormant
	return nil
}

// IsBound reports whether this space currently has a live runtime space,
// for test assertions and diagnostics.
func (s *Space) IsBound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st == stateBound
}
