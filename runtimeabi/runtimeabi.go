// Package runtimeabi names the boundary between the engine and the host XR
// runtime described in spec.md §6: a C ABI function-pointer table in the
// real system, represented here as a Go interface. Nothing in this module
// implements Runtime against a real runtime — see the fake subpackage for
// the in-memory double every other package tests against.
package runtimeabi

import (
	"time"

	"github.com/sorenxr/xrshadow/catalog"
)

// Path is an opaque path atom minted by the runtime's string-to-path entry
// point. The engine never synthesizes these itself.
type Path uint64

// NullPath is the path value meaning "no subaction filter" / "the
// singleton slot".
const NullPath Path = 0

// Time is a runtime-supplied monotonic timestamp, in nanoseconds.
type Time int64

// StateBoolean is the polymorphic input state for a boolean action.
type StateBoolean struct {
	Current              bool
	IsActive             bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
}

// StateFloat is the polymorphic input state for a float action.
type StateFloat struct {
	Current              float32
	IsActive             bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
}

// StateVector2 is the polymorphic input state for a 2-D vector action.
type StateVector2 struct {
	X, Y                 float32
	IsActive             bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
}

// StatePose is the polymorphic input state for a pose action. It carries no
// value — the pose itself is obtained by locating the action's space.
type StatePose struct {
	IsActive bool
}

// Vibration is a haptic payload passed through unchanged, per spec.md §1
// ("interpreting device-specific haptic waveforms... is a non-goal").
type Vibration struct {
	Amplitude float32
	Frequency float32
	Duration  time.Duration
}

// Pose is a rigid transform: position plus orientation. Orientation is a
// unit quaternion.
type Pose struct {
	PosX, PosY, PosZ             float32
	OrientX, OrientY, OrientZ, OrientW float32
}

// IdentityPose is the pose synthesized for a Lazy/Dormant action space.
var IdentityPose = Pose{OrientW: 1}

// SpaceLocation is the result of locating a space relative to a base space.
type SpaceLocation struct {
	OrientationValid bool
	PositionValid    bool
	OrientationTracked bool
	PositionTracked    bool
	Pose             Pose
}

// EmptyLocation is what the rebinder synthesizes while no physical source
// is bound, per spec.md §4.5: zero flags, identity pose.
var EmptyLocation = SpaceLocation{Pose: IdentityPose}

// Fov is a symmetric/asymmetric field of view in radians, one per eye view.
type Fov struct {
	AngleLeft, AngleRight, AngleUp, AngleDown float32
}

// ViewPose is one entry of a locate-views result.
type ViewPose struct {
	Location SpaceLocation
	Fov      Fov
}

// SuggestedBinding pairs a user path with the shadow action it should
// route to, for one call to SuggestInteractionProfileBindings.
type SuggestedBinding struct {
	UserPath Path
	Action   Handle
}

// Handle is a runtime-issued opaque handle (action set, action, or space).
// It is distinct from registry.Handle: this one is minted by the runtime
// side of the boundary, the other by the engine's own bookkeeping.
type Handle uint64

// NullHandle is the zero value, meaning "no handle".
const NullHandle Handle = 0

// Runtime is the subset of the host runtime's function table the engine
// consumes: create/destroy action sets, actions and spaces, suggest
// bindings, attach, sync, the four get-state entry points, locate-space,
// locate-views, haptics, and the path atom table. All other runtime entry
// points are forwarded unchanged by the dispatch shims and never reach
// this interface.
type Runtime interface {
	CreateActionSet(name, localizedName string) (Handle, error)
	DestroyActionSet(h Handle) error

	CreateAction(set Handle, name, localizedName string, actionType catalog.ActionType, subactionPaths []Path) (Handle, error)
	DestroyAction(h Handle) error

	SuggestInteractionProfileBindings(profile Path, bindings []SuggestedBinding) error

	AttachSessionActionSets(session Handle, sets []Handle) error
	SyncActions(session Handle, activeSets []Handle) error

	GetActionStateBoolean(session, action Handle, subactionPath Path) (StateBoolean, error)
	GetActionStateFloat(session, action Handle, subactionPath Path) (StateFloat, error)
	GetActionStateVector2(session, action Handle, subactionPath Path) (StateVector2, error)
	GetActionStatePose(session, action Handle, subactionPath Path) (StatePose, error)

	CreateActionSpace(session, action Handle, subactionPath Path, poseInActionSpace Pose) (Handle, error)
	DestroySpace(h Handle) error
	LocateSpace(space, baseSpace Handle, time Time) (SpaceLocation, error)
	LocateViews(session, baseSpace Handle, time Time, viewCount int) ([]ViewPose, error)

	ApplyHapticFeedback(session, action Handle, subactionPath Path, vibration Vibration) error
	StopHapticFeedback(session, action Handle, subactionPath Path) error

	StringToPath(str string) (Path, error)
	PathToString(p Path) (string, error)
}
