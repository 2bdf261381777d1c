// Package catalog holds the static, compiled-in description of every
// interaction profile the engine knows how to shadow. It is built once per
// process and is read-only afterward: producing it is a pure function of
// the compiled-in literals below, independent of any runtime state.
package catalog

import "sort"

// Feature is an atomic sensor under a subpath.
type Feature string

// The closed set of recognized features.
const (
	FeatureClick    Feature = "click"
	FeatureTouch    Feature = "touch"
	FeatureForce    Feature = "force"
	FeatureValue    Feature = "value"
	FeaturePosition Feature = "position"
	FeatureTwist    Feature = "twist"
	FeaturePose     Feature = "pose"
	FeatureHaptic   Feature = "haptic"
	FeatureUnknown  Feature = "unknown"
)

// ActionType is the canonical OpenXR action type a feature projects to.
type ActionType int

// The action types the engine ever creates shadow actions for.
const (
	ActionTypeBoolean ActionType = iota
	ActionTypeFloat
	ActionTypeVector2
	ActionTypePose
	ActionTypeVibration
)

func (t ActionType) String() string {
	switch t {
	case ActionTypeBoolean:
		return "boolean"
	case ActionTypeFloat:
		return "float"
	case ActionTypeVector2:
		return "vector2"
	case ActionTypePose:
		return "pose"
	case ActionTypeVibration:
		return "vibration"
	default:
		return "unknown"
	}
}

// CanonicalType returns the action-type projection for a feature, and false
// for the "unknown" feature, which has none.
func (f Feature) CanonicalType() (ActionType, bool) {
	switch f {
	case FeatureClick, FeatureTouch:
		return ActionTypeBoolean, true
	case FeatureForce, FeatureValue, FeatureTwist:
		return ActionTypeFloat, true
	case FeaturePosition:
		return ActionTypeVector2, true
	case FeaturePose:
		return ActionTypePose, true
	case FeatureHaptic:
		return ActionTypeVibration, true
	default:
		return 0, false
	}
}

// Side restricts which user paths may see a subpath.
type Side string

// The two side filters a subpath may carry; the zero value means no filter.
const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Matches reports whether a user path's tail satisfies this side filter.
func (s Side) Matches(userPath string) bool {
	if s == SideNone {
		return true
	}
	n := len(userPath)
	tail := string(s)
	return n >= len(tail) && userPath[n-len(tail):] == tail
}

// Subpath describes one device component under a top-level user path, e.g.
// "/input/trigger" under "/user/hand/left".
type Subpath struct {
	// Name is the localized display name.
	Name string
	// Side optionally restricts which user paths this subpath applies to.
	Side Side
	// Features is the ordered list of sensors this subpath exposes.
	Features []Feature
}

// Profile is the static description of one interaction profile.
type Profile struct {
	// Path is the profile's identifier, e.g.
	// "/interaction_profiles/vendor/device".
	Path string
	// Title is a human-readable display name.
	Title string
	// UserPaths are the top-level user paths this profile applies to.
	UserPaths []string
	// Subpaths maps subpath string to its descriptor. Iterate via
	// SortedSubpaths for a deterministic order.
	Subpaths map[string]Subpath
}

// SortedSubpaths returns the profile's subpath keys in lexical order, so
// callers that must iterate deterministically (shadow action creation,
// suggested-binding submission) see a stable order across runs.
func (p Profile) SortedSubpaths() []string {
	keys := make([]string, 0, len(p.Subpaths))
	for k := range p.Subpaths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Catalog is the full set of known interaction profiles, keyed by profile
// path.
type Catalog struct {
	Profiles map[string]Profile
}

// SortedPaths returns the catalog's profile paths in lexical order.
func (c Catalog) SortedPaths() []string {
	keys := make([]string, 0, len(c.Profiles))
	for k := range c.Profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var userHandLeft = "/user/hand/left"
var userHandRight = "/user/hand/right"
var userGamepad = "/user/gamepad"
var userEyes = "/user/eyes_ext"

// Generate builds the catalog from the compiled-in profile literals. It is
// deterministic and takes no runtime state, per the Profile Catalog
// component's contract.
func Generate() Catalog {
	profiles := map[string]Profile{}
	for _, p := range []Profile{
		simpleController(),
		touchController(),
		viveWand(),
		indexHand(),
		gamepadProfile(),
		eyeGazeProfile(),
	} {
		profiles[p.Path] = p
	}
	return Catalog{Profiles: profiles}
}

func simpleController() Profile {
	return Profile{
		Path:      "/interaction_profiles/khr/simple_controller",
		Title:     "Khronos Simple Controller",
		UserPaths: []string{userHandLeft, userHandRight},
		Subpaths: map[string]Subpath{
			"/input/select":  {Name: "Select", Features: []Feature{FeatureClick}},
			"/input/menu":    {Name: "Menu", Features: []Feature{FeatureClick}},
			"/input/grip":    {Name: "Grip", Features: []Feature{FeaturePose}},
			"/input/aim":     {Name: "Aim", Features: []Feature{FeaturePose}},
			"/output/haptic": {Name: "Haptic", Features: []Feature{FeatureHaptic}},
		},
	}
}

func touchController() Profile {
	return Profile{
		Path:      "/interaction_profiles/oculus/touch_controller",
		Title:     "Oculus Touch Controller",
		UserPaths: []string{userHandLeft, userHandRight},
		Subpaths: map[string]Subpath{
			"/input/x":         {Name: "X", Side: SideLeft, Features: []Feature{FeatureClick}},
			"/input/y":         {Name: "Y", Side: SideLeft, Features: []Feature{FeatureClick}},
			"/input/a":         {Name: "A", Side: SideRight, Features: []Feature{FeatureClick}},
			"/input/b":         {Name: "B", Side: SideRight, Features: []Feature{FeatureClick}},
			"/input/trigger":   {Name: "Trigger", Features: []Feature{FeatureValue, FeatureTouch}},
			"/input/squeeze":   {Name: "Squeeze", Features: []Feature{FeatureValue}},
			"/input/thumbstick": {Name: "Thumbstick", Features: []Feature{FeatureClick, FeatureTouch, FeaturePosition}},
			"/input/grip":      {Name: "Grip Pose", Features: []Feature{FeaturePose}},
			"/input/aim":       {Name: "Aim Pose", Features: []Feature{FeaturePose}},
			"/output/haptic":   {Name: "Haptic", Features: []Feature{FeatureHaptic}},
		},
	}
}

func viveWand() Profile {
	return Profile{
		Path:      "/interaction_profiles/htc/vive_controller",
		Title:     "HTC Vive Wand",
		UserPaths: []string{userHandLeft, userHandRight},
		Subpaths: map[string]Subpath{
			"/input/system":  {Name: "System", Features: []Feature{FeatureClick}},
			"/input/squeeze": {Name: "Squeeze", Features: []Feature{FeatureClick}},
			"/input/menu":    {Name: "Menu", Features: []Feature{FeatureClick}},
			"/input/trigger": {Name: "Trigger", Features: []Feature{FeatureValue, FeatureClick}},
			"/input/trackpad":      {Name: "Trackpad", Features: []Feature{FeatureClick, FeatureTouch, FeaturePosition}},
			"/input/grip":          {Name: "Grip Pose", Features: []Feature{FeaturePose}},
			"/input/aim":           {Name: "Aim Pose", Features: []Feature{FeaturePose}},
			"/output/haptic":       {Name: "Haptic", Features: []Feature{FeatureHaptic}},
		},
	}
}

func indexHand() Profile {
	return Profile{
		Path:      "/interaction_profiles/valve/index_controller",
		Title:     "Valve Index Controller",
		UserPaths: []string{userHandLeft, userHandRight},
		Subpaths: map[string]Subpath{
			"/input/system":       {Name: "System", Features: []Feature{FeatureClick}},
			"/input/a":            {Name: "A", Features: []Feature{FeatureClick, FeatureTouch}},
			"/input/b":            {Name: "B", Features: []Feature{FeatureClick, FeatureTouch}},
			"/input/trigger":      {Name: "Trigger", Features: []Feature{FeatureValue, FeatureClick, FeatureTouch}},
			"/input/squeeze":      {Name: "Squeeze", Features: []Feature{FeatureValue, FeatureForce}},
			"/input/thumbstick":   {Name: "Thumbstick", Features: []Feature{FeatureClick, FeatureTouch, FeaturePosition}},
			"/input/trackpad":     {Name: "Trackpad", Features: []Feature{FeatureForce, FeatureTouch, FeaturePosition}},
			"/input/grip":         {Name: "Grip Pose", Features: []Feature{FeaturePose}},
			"/input/aim":          {Name: "Aim Pose", Features: []Feature{FeaturePose}},
			"/output/haptic":      {Name: "Haptic", Features: []Feature{FeatureHaptic}},
		},
	}
}

func gamepadProfile() Profile {
	return Profile{
		Path:      "/interaction_profiles/microsoft/xbox_controller",
		Title:     "Xbox Controller",
		UserPaths: []string{userGamepad},
		Subpaths: map[string]Subpath{
			"/input/menu":            {Name: "Menu", Features: []Feature{FeatureClick}},
			"/input/view":            {Name: "View", Features: []Feature{FeatureClick}},
			"/input/a":               {Name: "A", Features: []Feature{FeatureClick}},
			"/input/b":               {Name: "B", Features: []Feature{FeatureClick}},
			"/input/x":               {Name: "X", Features: []Feature{FeatureClick}},
			"/input/y":               {Name: "Y", Features: []Feature{FeatureClick}},
			"/input/trigger_left":    {Name: "Left Trigger", Features: []Feature{FeatureValue}},
			"/input/trigger_right":   {Name: "Right Trigger", Features: []Feature{FeatureValue}},
			"/input/thumbstick_left":  {Name: "Left Thumbstick", Side: SideLeft, Features: []Feature{FeatureClick, FeaturePosition}},
			"/input/thumbstick_right": {Name: "Right Thumbstick", Side: SideRight, Features: []Feature{FeatureClick, FeaturePosition}},
			"/output/haptic_left":     {Name: "Left Haptic", Side: SideLeft, Features: []Feature{FeatureHaptic}},
			"/output/haptic_right":    {Name: "Right Haptic", Side: SideRight, Features: []Feature{FeatureHaptic}},
		},
	}
}

func eyeGazeProfile() Profile {
	return Profile{
		Path:      "/interaction_profiles/ext/eye_gaze_interaction",
		Title:     "Eye Gaze Interaction",
		UserPaths: []string{userEyes},
		Subpaths: map[string]Subpath{
			"/input/gaze_ext": {Name: "Gaze Pose", Features: []Feature{FeaturePose}},
		},
	}
}
