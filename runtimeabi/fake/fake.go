// Package fake is an in-memory double for runtimeabi.Runtime. It stands in
// for the real host runtime in every test in this module: it tracks action
// sets/actions/spaces the engine creates, and lets test code drive
// "physical device" state directly via its Set* methods, the way a real
// runtime's input thread would.
package fake

import (
	"fmt"
	"sync"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/runtimeabi"
)

type actionSetRec struct {
	name, localizedName string
}

type actionRec struct {
	set                  runtimeabi.Handle
	name, localizedName  string
	actionType           catalog.ActionType
	subactionPaths       []runtimeabi.Path
}

type spaceRec struct {
	action            runtimeabi.Handle
	subactionPath     runtimeabi.Path
	poseInActionSpace runtimeabi.Pose
}

type registerKey struct {
	action        runtimeabi.Handle
	subactionPath runtimeabi.Path
}

type boolEntry struct {
	value, active bool
	changeTime    runtimeabi.Time
}

type floatEntry struct {
	value      float32
	active     bool
	changeTime runtimeabi.Time
}

type vec2Entry struct {
	x, y       float32
	active     bool
	changeTime runtimeabi.Time
}

type poseEntry struct {
	active bool
}

// HapticCall records one ApplyHapticFeedback/StopHapticFeedback invocation,
// for test assertions on fan-out (spec.md §4.4.6 / scenario 5).
type HapticCall struct {
	Action        runtimeabi.Handle
	SubactionPath runtimeabi.Path
	Stop          bool
	Vibration     runtimeabi.Vibration
}

// Runtime is the fake implementation of runtimeabi.Runtime.
type Runtime struct {
	mu sync.Mutex

	nextHandle uint64
	nextPath   uint64
	pathToStr  map[runtimeabi.Path]string
	strToPath  map[string]runtimeabi.Path

	actionSets map[runtimeabi.Handle]*actionSetRec
	actions    map[runtimeabi.Handle]*actionRec
	spaces     map[runtimeabi.Handle]*spaceRec

	attached map[runtimeabi.Handle][]runtimeabi.Handle

	bools   map[registerKey]boolEntry
	floats  map[registerKey]floatEntry
	vec2s   map[registerKey]vec2Entry
	poses   map[registerKey]poseEntry

	// lastQueried snapshots let GetActionState* compute ChangedSinceLastSync
	// relative to the previous query, mirroring a real runtime's per-sync
	// changed flag.
	lastQueriedBool  map[registerKey]boolEntry
	lastQueriedFloat map[registerKey]floatEntry
	lastQueriedVec2  map[registerKey]vec2Entry

	spaceLocations map[runtimeabi.Handle]runtimeabi.SpaceLocation

	SuggestedBindings map[runtimeabi.Path][]runtimeabi.SuggestedBinding
	HapticCalls       []HapticCall

	// SuggestFailures, if set, causes SuggestInteractionProfileBindings to
	// fail for the named profile path string, exercising the "submission
	// failure is a diagnostic, not fatal" contract in spec.md §4.3.
	SuggestFailures map[string]bool
}

// New creates an empty fake runtime.
func New() *Runtime {
	return &Runtime{
		pathToStr:         map[runtimeabi.Path]string{},
		strToPath:         map[string]runtimeabi.Path{},
		actionSets:        map[runtimeabi.Handle]*actionSetRec{},
		actions:           map[runtimeabi.Handle]*actionRec{},
		spaces:            map[runtimeabi.Handle]*spaceRec{},
		attached:          map[runtimeabi.Handle][]runtimeabi.Handle{},
		bools:             map[registerKey]boolEntry{},
		floats:            map[registerKey]floatEntry{},
		vec2s:             map[registerKey]vec2Entry{},
		poses:             map[registerKey]poseEntry{},
		lastQueriedBool:   map[registerKey]boolEntry{},
		lastQueriedFloat:  map[registerKey]floatEntry{},
		lastQueriedVec2:   map[registerKey]vec2Entry{},
		spaceLocations:    map[runtimeabi.Handle]runtimeabi.SpaceLocation{},
		SuggestedBindings: map[runtimeabi.Path][]runtimeabi.SuggestedBinding{},
		SuggestFailures:   map[string]bool{},
	}
}

func (r *Runtime) newHandle() runtimeabi.Handle {
	r.nextHandle++
	return runtimeabi.Handle(r.nextHandle)
}

// StringToPath mints or reuses an opaque path atom for str.
func (r *Runtime) StringToPath(str string) (runtimeabi.Path, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.strToPath[str]; ok {
		return p, nil
	}
	r.nextPath++
	p := runtimeabi.Path(r.nextPath)
	r.strToPath[str] = p
	r.pathToStr[p] = str
	return p, nil
}

// PathToString looks up the string a path atom was minted from.
func (r *Runtime) PathToString(p runtimeabi.Path) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.pathToStr[p]
	if !ok {
		return "", fmt.Errorf("fake runtime: unknown path %d", p)
	}
	return s, nil
}

// CreateActionSet creates an action set record.
func (r *Runtime) CreateActionSet(name, localizedName string) (runtimeabi.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.newHandle()
	r.actionSets[h] = &actionSetRec{name: name, localizedName: localizedName}
	return h, nil
}

// DestroyActionSet removes an action set record.
func (r *Runtime) DestroyActionSet(h runtimeabi.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actionSets, h)
	return nil
}

// CreateAction creates an action record under set.
func (r *Runtime) CreateAction(set runtimeabi.Handle, name, localizedName string, actionType catalog.ActionType, subactionPaths []runtimeabi.Path) (runtimeabi.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actionSets[set]; !ok {
		return runtimeabi.NullHandle, fmt.Errorf("fake runtime: unknown action set %d", set)
	}
	h := r.newHandle()
	r.actions[h] = &actionRec{
		set:            set,
		name:           name,
		localizedName:  localizedName,
		actionType:     actionType,
		subactionPaths: subactionPaths,
	}
	return h, nil
}

// DestroyAction removes an action record.
func (r *Runtime) DestroyAction(h runtimeabi.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, h)
	return nil
}

// SuggestInteractionProfileBindings records the submission, or fails it if
// the profile path was marked via SuggestFailures — used to exercise
// spec.md §4.3's "logged but not fatal" contract.
func (r *Runtime) SuggestInteractionProfileBindings(profile runtimeabi.Path, bindings []runtimeabi.SuggestedBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name, ok := r.pathToStr[profile]; ok && r.SuggestFailures[name] {
		return fmt.Errorf("fake runtime: runtime rejected bindings for %s", name)
	}
	r.SuggestedBindings[profile] = append(r.SuggestedBindings[profile], bindings...)
	return nil
}

// AttachSessionActionSets records which action sets a session attached.
func (r *Runtime) AttachSessionActionSets(session runtimeabi.Handle, sets []runtimeabi.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attached[session] = append(r.attached[session], sets...)
	return nil
}

// SyncActions is a no-op in the fake: state is visible as soon as Set* is
// called. Real runtimes only refresh state at sync; the fake's
// ChangedSinceLastSync bookkeeping lives in the GetActionState* calls
// instead, which is equivalent from the engine's point of view since the
// engine always syncs before reading.
func (r *Runtime) SyncActions(session runtimeabi.Handle, activeSets []runtimeabi.Handle) error {
	return nil
}

// SetBoolean sets the physical state of a boolean input, as a real
// runtime's input thread would.
func (r *Runtime) SetBoolean(action runtimeabi.Handle, subactionPath runtimeabi.Path, value, active bool, changeTime runtimeabi.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bools[registerKey{action, subactionPath}] = boolEntry{value: value, active: active, changeTime: changeTime}
}

// SetFloat sets the physical state of a float input.
func (r *Runtime) SetFloat(action runtimeabi.Handle, subactionPath runtimeabi.Path, value float32, active bool, changeTime runtimeabi.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floats[registerKey{action, subactionPath}] = floatEntry{value: value, active: active, changeTime: changeTime}
}

// SetVector2 sets the physical state of a 2-D vector input.
func (r *Runtime) SetVector2(action runtimeabi.Handle, subactionPath runtimeabi.Path, x, y float32, active bool, changeTime runtimeabi.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vec2s[registerKey{action, subactionPath}] = vec2Entry{x: x, y: y, active: active, changeTime: changeTime}
}

// SetPoseActive sets whether a pose input currently has an active physical
// source.
func (r *Runtime) SetPoseActive(action runtimeabi.Handle, subactionPath runtimeabi.Path, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses[registerKey{action, subactionPath}] = poseEntry{active: active}
}

// GetActionStateBoolean returns the current physical state, computing
// ChangedSinceLastSync relative to the previous query for this key.
func (r *Runtime) GetActionStateBoolean(session, action runtimeabi.Handle, subactionPath runtimeabi.Path) (runtimeabi.StateBoolean, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := registerKey{action, subactionPath}
	cur := r.bools[key]
	prev, hadPrev := r.lastQueriedBool[key]
	changed := !hadPrev || prev.value != cur.value || prev.active != cur.active
	r.lastQueriedBool[key] = cur
	return runtimeabi.StateBoolean{
		Current:              cur.value,
		IsActive:             cur.active,
		ChangedSinceLastSync: changed,
		LastChangeTime:       cur.changeTime,
	}, nil
}

// GetActionStateFloat returns the current physical state for a float
// input.
func (r *Runtime) GetActionStateFloat(session, action runtimeabi.Handle, subactionPath runtimeabi.Path) (runtimeabi.StateFloat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := registerKey{action, subactionPath}
	cur := r.floats[key]
	prev, hadPrev := r.lastQueriedFloat[key]
	changed := !hadPrev || prev.value != cur.value || prev.active != cur.active
	r.lastQueriedFloat[key] = cur
	return runtimeabi.StateFloat{
		Current:              cur.value,
		IsActive:             cur.active,
		ChangedSinceLastSync: changed,
		LastChangeTime:       cur.changeTime,
	}, nil
}

// GetActionStateVector2 returns the current physical state for a vector2
// input.
func (r *Runtime) GetActionStateVector2(session, action runtimeabi.Handle, subactionPath runtimeabi.Path) (runtimeabi.StateVector2, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := registerKey{action, subactionPath}
	cur := r.vec2s[key]
	prev, hadPrev := r.lastQueriedVec2[key]
	changed := !hadPrev || prev.x != cur.x || prev.y != cur.y || prev.active != cur.active
	r.lastQueriedVec2[key] = cur
	return runtimeabi.StateVector2{
		X:                    cur.x,
		Y:                    cur.y,
		IsActive:             cur.active,
		ChangedSinceLastSync: changed,
		LastChangeTime:       cur.changeTime,
	}, nil
}

// GetActionStatePose returns only whether a pose input currently has an
// active physical source.
func (r *Runtime) GetActionStatePose(session, action runtimeabi.Handle, subactionPath runtimeabi.Path) (runtimeabi.StatePose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.poses[registerKey{action, subactionPath}]
	return runtimeabi.StatePose{IsActive: cur.active}, nil
}

// CreateActionSpace creates a space record derived from a pose action.
func (r *Runtime) CreateActionSpace(session, action runtimeabi.Handle, subactionPath runtimeabi.Path, poseInActionSpace runtimeabi.Pose) (runtimeabi.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.newHandle()
	r.spaces[h] = &spaceRec{action: action, subactionPath: subactionPath, poseInActionSpace: poseInActionSpace}
	return h, nil
}

// DestroySpace removes a space record.
func (r *Runtime) DestroySpace(h runtimeabi.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spaces, h)
	delete(r.spaceLocations, h)
	return nil
}

// SetSpaceLocation sets what LocateSpace returns for a bound runtime space
// handle, simulating tracking data for that physical source.
func (r *Runtime) SetSpaceLocation(h runtimeabi.Handle, loc runtimeabi.SpaceLocation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spaceLocations[h] = loc
}

// LocateSpace returns the location previously set via SetSpaceLocation, or
// a valid identity location if none was set.
func (r *Runtime) LocateSpace(space, baseSpace runtimeabi.Handle, t runtimeabi.Time) (runtimeabi.SpaceLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.spaceLocations[space]; ok {
		return loc, nil
	}
	return runtimeabi.SpaceLocation{
		OrientationValid: true, PositionValid: true,
		OrientationTracked: true, PositionTracked: true,
		Pose: runtimeabi.IdentityPose,
	}, nil
}

// LocateViews returns one identity view per requested view, since this
// fake has no concept of a headset's render views; the engine's rebinder
// only ever substitutes the space handle, which this exercises.
func (r *Runtime) LocateViews(session, baseSpace runtimeabi.Handle, t runtimeabi.Time, viewCount int) ([]runtimeabi.ViewPose, error) {
	views := make([]runtimeabi.ViewPose, viewCount)
	for i := range views {
		views[i] = runtimeabi.ViewPose{Location: runtimeabi.SpaceLocation{
			OrientationValid: true, PositionValid: true, Pose: runtimeabi.IdentityPose,
		}}
	}
	return views, nil
}

// ApplyHapticFeedback records the call for test assertions.
func (r *Runtime) ApplyHapticFeedback(session, action runtimeabi.Handle, subactionPath runtimeabi.Path, vibration runtimeabi.Vibration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.HapticCalls = append(r.HapticCalls, HapticCall{Action: action, SubactionPath: subactionPath, Vibration: vibration})
	return nil
}

// StopHapticFeedback records the call for test assertions.
func (r *Runtime) StopHapticFeedback(session, action runtimeabi.Handle, subactionPath runtimeabi.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.HapticCalls = append(r.HapticCalls, HapticCall{Action: action, SubactionPath: subactionPath, Stop: true})
	return nil
}

var _ runtimeabi.Runtime = (*Runtime)(nil)
