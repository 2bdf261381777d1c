// Package shadow builds the shadow action sets an instance uses to mirror
// every interaction profile's bindable feature leaves, per spec.md §4.3.
// Grounded in god_actions.rs's per-profile god-action-set construction
// (OxideXR creates one "god" action set per interaction profile with one
// action per feature), generalized here into an explicit factory so the
// escaping and position-splitting rules are unit-testable in isolation.
package shadow

import (
	"sort"
	"strings"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/internal/telemetry"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/xrerr"
)

// escapeReplacer implements the profile-path-to-action-set-name rule:
// "-" -> "--", "/" -> "-". strings.Replacer performs one simultaneous,
// non-cascading pass so escaped output is never rescanned.
var escapeReplacer = strings.NewReplacer("-", "--", "/", "-")

// EscapeProfilePath applies the Shadow Action Factory's name-escaping rule.
func EscapeProfilePath(profilePath string) string {
	return escapeReplacer.Replace(profilePath)
}

// Action is one shadow action: a runtime handle, the feature-leaf suffix it
// represents (e.g. "/input/trigger/value" or "/output/haptic"), and the
// user paths it was created with.
type Action struct {
	Handle     runtimeabi.Handle
	Suffix     string
	UserPaths  []string
	ActionType catalog.ActionType
}

// ActionSet is one profile's shadow action set: the runtime action-set
// handle plus every shadow action it contains, keyed by leaf suffix.
type ActionSet struct {
	ProfilePath string
	Handle      runtimeabi.Handle
	Actions     map[string]*Action
}

// SortedSuffixes returns the set's leaf suffixes in lexical order, for
// callers that must iterate deterministically.
func (s *ActionSet) SortedSuffixes() []string {
	keys := make([]string, 0, len(s.Actions))
	for k := range s.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build constructs one shadow action set per profile in cat, keyed by
// profile path. It is the Shadow Action Factory of spec.md §4.3.
func Build(rt runtimeabi.Runtime, cat catalog.Catalog) (map[string]*ActionSet, error) {
	result := make(map[string]*ActionSet, len(cat.Profiles))
	for _, profilePath := range cat.SortedPaths() {
		profile := cat.Profiles[profilePath]
		set, err := buildProfileSet(rt, profile)
		if err != nil {
			return nil, err
		}
		result[profilePath] = set
	}
	return result, nil
}

func buildProfileSet(rt runtimeabi.Runtime, profile catalog.Profile) (*ActionSet, error) {
	setHandle, err := rt.CreateActionSet(EscapeProfilePath(profile.Path), profile.Title)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.RuntimeFailure, err, "create shadow action set for %s", profile.Path)
	}

	set := &ActionSet{ProfilePath: profile.Path, Handle: setHandle, Actions: map[string]*Action{}}

	for _, subpathKey := range profile.SortedSubpaths() {
		subpath := profile.Subpaths[subpathKey]
		userPaths := filterUserPaths(profile.UserPaths, subpath.Side)
		subactionPaths, err := internPaths(rt, userPaths)
		if err != nil {
			return nil, err
		}

		for _, feature := range subpath.Features {
			switch feature {
			case catalog.FeaturePosition:
				if err := addAction(rt, set, subpathKey+"/x", userPaths, subactionPaths, catalog.ActionTypeFloat); err != nil {
					return nil, err
				}
				if err := addAction(rt, set, subpathKey+"/y", userPaths, subactionPaths, catalog.ActionTypeFloat); err != nil {
					return nil, err
				}
				if err := addAction(rt, set, subpathKey, userPaths, subactionPaths, catalog.ActionTypeVector2); err != nil {
					return nil, err
				}
			case catalog.FeatureHaptic:
				if err := addAction(rt, set, subpathKey, userPaths, subactionPaths, catalog.ActionTypeVibration); err != nil {
					return nil, err
				}
			case catalog.FeatureUnknown:
				telemetry.Log.WithField("subpath", subpathKey).Warn("shadow: skipping unknown feature")
			default:
				actionType, ok := feature.CanonicalType()
				if !ok {
					telemetry.Log.WithField("feature", feature).Warn("shadow: feature has no canonical type, skipping")
					continue
				}
				if err := addAction(rt, set, subpathKey+"/"+string(feature), userPaths, subactionPaths, actionType); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := submitBindings(rt, set); err != nil {
		telemetry.Log.WithError(err).WithField("profile", profile.Path).
			Warn("shadow: suggested-binding submission failed, continuing with partial coverage")
	}

	return set, nil
}

func addAction(rt runtimeabi.Runtime, set *ActionSet, suffix string, userPaths []string, subactionPaths []runtimeabi.Path, actionType catalog.ActionType) error {
	handle, err := rt.CreateAction(set.Handle, suffix, suffix, actionType, subactionPaths)
	if err != nil {
		return xrerr.Wrap(xrerr.RuntimeFailure, err, "create shadow action %s%s", set.ProfilePath, suffix)
	}
	set.Actions[suffix] = &Action{
		Handle:     handle,
		Suffix:     suffix,
		UserPaths:  userPaths,
		ActionType: actionType,
	}
	return nil
}

func filterUserPaths(userPaths []string, side catalog.Side) []string {
	out := make([]string, 0, len(userPaths))
	for _, up := range userPaths {
		if side.Matches(up) {
			out = append(out, up)
		}
	}
	return out
}

func internPaths(rt runtimeabi.Runtime, userPaths []string) ([]runtimeabi.Path, error) {
	out := make([]runtimeabi.Path, 0, len(userPaths))
	for _, up := range userPaths {
		p, err := rt.StringToPath(up)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.RuntimeFailure, err, "string_to_path %s", up)
		}
		out = append(out, p)
	}
	return out, nil
}

// submitBindings enumerates every (user-path, shadow-action) pair as a
// suggested binding and submits them in one call, per spec.md §4.3 step 4.
func submitBindings(rt runtimeabi.Runtime, set *ActionSet) error {
	profilePathAtom, err := rt.StringToPath(set.ProfilePath)
	if err != nil {
		return xrerr.Wrap(xrerr.RuntimeFailure, err, "string_to_path %s", set.ProfilePath)
	}

	var bindings []runtimeabi.SuggestedBinding
	for _, suffix := range set.SortedSuffixes() {
		action := set.Actions[suffix]
		for _, up := range action.UserPaths {
			userPathAtom, err := rt.StringToPath(up)
			if err != nil {
				return xrerr.Wrap(xrerr.RuntimeFailure, err, "string_to_path %s", up)
			}
			bindings = append(bindings, runtimeabi.SuggestedBinding{UserPath: userPathAtom, Action: action.Handle})
		}
	}

	return rt.SuggestInteractionProfileBindings(profilePathAtom, bindings)
}
