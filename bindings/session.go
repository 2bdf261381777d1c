// Package bindings implements the Binding Resolver & State Engine: session
// bootstrap, application-attach, per-frame sync, multi-source aggregation,
// state read-back, and haptic fan-out, per spec.md §4.4. Grounded in
// layer/src/god_actions.rs's OxideActionState family for the aggregation
// rules and in layer/src/wrappers/session.rs for the bootstrap/attach
// shape, adapted to this module's registry/shadow/catalog types.
package bindings

import (
	"sort"
	"strings"
	"sync"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/registry"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/shadow"
	"github.com/sorenxr/xrshadow/xrerr"
)

// BindingView is the set of Binding Records an application action resolves
// to, partitioned by user path (or a single "" slot if the action declared
// no subaction paths).
type BindingView struct {
	ActionType catalog.ActionType
	Singleton  bool
	BySlot     map[string][]*Record
}

// Action is one application-declared action: the engine's own bookkeeping,
// never forwarded to the runtime directly. Its binding view and cached
// state are nil until the owning set is attached.
type Action struct {
	Handle        registry.Handle
	Name          string
	LocalizedName string
	ActionType    catalog.ActionType
	UserPaths     []string

	suggestedLeafPaths []string

	View   *BindingView
	Cached *cachedState
}

type cachedState struct {
	mu    sync.RWMutex
	slots map[string]*AggState
}

// ActionSet is one application-declared action set.
type ActionSet struct {
	Handle        registry.Handle
	Name          string
	LocalizedName string
	Actions       map[string]*Action
}

// SortedActionNames returns the set's action names in lexical order.
func (s *ActionSet) SortedActionNames() []string {
	keys := make([]string, 0, len(s.Actions))
	for k := range s.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PoseHook is invoked once per active pose-typed application action at the
// end of each sync, after its cached state has been re-aggregated, so the
// Action-Space Rebinder can revisit that action's spaces (spec.md §4.4.3
// step 4's "if it is pose-typed revisit its action spaces"). The bindings
// package has no dependency on the spaces package; callers wire this in.
type PoseHook func(action *Action)

// Session bootstraps Binding Records for every shadow action in scope,
// tracks declared/attached application action sets, and runs the
// per-frame sync algorithm.
type Session struct {
	rt             runtimeabi.Runtime
	runtimeSession runtimeabi.Handle
	shadowSets     map[string]*shadow.ActionSet

	records       []*Record
	recordsByLeaf map[string]*Record

	mu           sync.Mutex
	seq          uint64
	declaredSets map[registry.Handle]*ActionSet
	attached     bool
	attachedSets map[registry.Handle]*ActionSet

	active *activeProfiles

	PoseHook PoseHook
}

// NewSession allocates one Binding Record per (shadow action, user path)
// pair across every shadow set and attaches all shadow action sets to the
// runtime session, per spec.md §4.4.1.
func NewSession(rt runtimeabi.Runtime, runtimeSession runtimeabi.Handle, shadowSets map[string]*shadow.ActionSet) (*Session, error) {
	s := &Session{
		rt:             rt,
		runtimeSession: runtimeSession,
		shadowSets:     shadowSets,
		recordsByLeaf:  map[string]*Record{},
		declaredSets:   map[registry.Handle]*ActionSet{},
		active:         newActiveProfiles(),
	}

	profilePaths := make([]string, 0, len(shadowSets))
	for p := range shadowSets {
		profilePaths = append(profilePaths, p)
	}
	sort.Strings(profilePaths)

	var runtimeHandles []runtimeabi.Handle
	for _, profilePath := range profilePaths {
		set := shadowSets[profilePath]
		runtimeHandles = append(runtimeHandles, set.Handle)
		for _, suffix := range set.SortedSuffixes() {
			action := set.Actions[suffix]
			kind := KindInput
			if action.ActionType == catalog.ActionTypeVibration {
				kind = KindOutput
			}
			for _, up := range action.UserPaths {
				atom, err := rt.StringToPath(up)
				if err != nil {
					return nil, xrerr.Wrap(xrerr.RuntimeFailure, err, "string_to_path %s", up)
				}
				leaf := up + suffix
				rec := &Record{
					LeafPath:     leaf,
					UserPath:     up,
					UserPathAtom: atom,
					ShadowAction: action,
					ActionType:   action.ActionType,
					Kind:         kind,
				}
				s.records = append(s.records, rec)
				s.recordsByLeaf[leaf] = rec
			}
		}
	}

	if err := rt.AttachSessionActionSets(runtimeSession, runtimeHandles); err != nil {
		return nil, xrerr.Wrap(xrerr.RuntimeFailure, err, "attach_session_action_sets (shadow sets)")
	}

	return s, nil
}

// DeclareActionSet registers a new application action set.
func (s *Session) DeclareActionSet(name, localizedName string) *ActionSet {
	set := &ActionSet{Handle: registry.NewHandle(), Name: name, LocalizedName: localizedName, Actions: map[string]*Action{}}
	s.mu.Lock()
	s.declaredSets[set.Handle] = set
	s.mu.Unlock()
	return set
}

// DeclareAction registers a new application action under set.
func (s *Session) DeclareAction(set *ActionSet, name, localizedName string, actionType catalog.ActionType, userPaths []string) *Action {
	action := &Action{
		Handle:        registry.NewHandle(),
		Name:          name,
		LocalizedName: localizedName,
		ActionType:    actionType,
		UserPaths:     userPaths,
	}
	set.Actions[name] = action
	return action
}

// Suggest records leaf paths suggested for action on some profile. Called
// once per (action, profile) during the suggest-bindings phase, before
// attach.
func (s *Session) Suggest(action *Action, leafPaths []string) {
	action.suggestedLeafPaths = append(action.suggestedLeafPaths, leafPaths...)
}

// Attach builds each action's binding view and cached state from the
// suggestions recorded so far, per spec.md §4.4.2. It is write-once: a
// second call returns ActionSetsAlreadyAttached.
func (s *Session) Attach(sets []*ActionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return xrerr.New(xrerr.ActionSetsAlreadyAttached, "session already has an attached action-set table")
	}

	attached := make(map[registry.Handle]*ActionSet, len(sets))
	for _, set := range sets {
		for _, name := range set.SortedActionNames() {
			action := set.Actions[name]
			s.buildViewAndCache(action)
		}
		attached[set.Handle] = set
	}

	s.attachedSets = attached
	s.attached = true
	return nil
}

func (s *Session) buildViewAndCache(action *Action) {
	seen := map[string]bool{}
	var matched []*Record
	for _, leaf := range action.suggestedLeafPaths {
		if seen[leaf] {
			continue
		}
		seen[leaf] = true
		if rec, ok := s.recordsByLeaf[leaf]; ok {
			rec.referenced = true
			matched = append(matched, rec)
		}
	}

	view := &BindingView{ActionType: action.ActionType, Singleton: len(action.UserPaths) == 0}
	view.BySlot = map[string][]*Record{}
	if view.Singleton {
		view.BySlot[""] = matched
	} else {
		for _, up := range action.UserPaths {
			view.BySlot[up] = nil
		}
		// A record is assigned to the user path that is its longest
		// matching prefix, per spec.md §3's "assigned to a user path by
		// longest-prefix match" — not every prefix-matching user path, so
		// a record can never land in two slots at once.
		for _, rec := range matched {
			best := ""
			for _, up := range action.UserPaths {
				if strings.HasPrefix(rec.LeafPath, up) && len(up) > len(best) {
					best = up
				}
			}
			if best != "" {
				view.BySlot[best] = append(view.BySlot[best], rec)
			}
		}
	}

	cached := &cachedState{slots: map[string]*AggState{}}
	for slotKey := range view.BySlot {
		cached.slots[slotKey] = &AggState{}
	}

	action.View = view
	action.Cached = cached
}

// Sync runs the per-frame sync algorithm: shadow-set sync, referenced
// record refresh, sequence increment, then per-active-action-set
// aggregation and pose rebinding, in that order, per spec.md §4.4.3.
func (s *Session) Sync(activeSets []registry.Handle) error {
	runtimeHandles := make([]runtimeabi.Handle, 0, len(s.shadowSets))
	profilePaths := make([]string, 0, len(s.shadowSets))
	for p := range s.shadowSets {
		profilePaths = append(profilePaths, p)
	}
	sort.Strings(profilePaths)
	for _, p := range profilePaths {
		runtimeHandles = append(runtimeHandles, s.shadowSets[p].Handle)
	}

	if err := s.rt.SyncActions(s.runtimeSession, runtimeHandles); err != nil {
		return xrerr.Wrap(xrerr.RuntimeFailure, err, "sync_actions")
	}

	for _, r := range s.records {
		if !r.referenced || r.Kind == KindOutput {
			continue
		}
		if err := r.refresh(s.rt, s.runtimeSession); err != nil {
			return xrerr.Wrap(xrerr.RuntimeFailure, err, "get_action_state for %s", r.LeafPath)
		}
	}

	s.mu.Lock()
	s.seq++
	attached := s.attached
	s.mu.Unlock()

	if !attached {
		return xrerr.New(xrerr.ActionSetNotAttached, "session has no attached action sets")
	}

	for _, h := range activeSets {
		s.mu.Lock()
		set, ok := s.attachedSets[h]
		s.mu.Unlock()
		if !ok {
			if _, declared := s.declaredSets[h]; declared {
				return xrerr.New(xrerr.ActionSetNotAttached, "action set not attached")
			}
			return xrerr.New(xrerr.HandleInvalid, "unknown action set handle")
		}

		for _, name := range set.SortedActionNames() {
			action := set.Actions[name]
			s.aggregateAction(action)
			if action.ActionType == catalog.ActionTypePose && s.PoseHook != nil {
				s.PoseHook(action)
			}
		}
	}

	return nil
}

func (s *Session) aggregateAction(action *Action) {
	action.Cached.mu.Lock()
	defer action.Cached.mu.Unlock()
	for slotKey, records := range action.View.BySlot {
		prev := *action.Cached.slots[slotKey]
		var next AggState
		switch action.ActionType {
		case catalog.ActionTypeBoolean:
			next = aggregateBoolean(records, prev)
		case catalog.ActionTypeFloat:
			next = aggregateFloat(records, prev)
		case catalog.ActionTypeVector2:
			next = aggregateVector2(records, prev)
		case catalog.ActionTypePose:
			next = aggregatePose(records)
		}
		action.Cached.slots[slotKey] = &next
	}
}

// BindingView exposes an attached action's binding view, for the
// Action-Space Rebinder to walk the pose binding records of a given user
// path.
func (a *Action) BindingView() *BindingView { return a.View }

// Seq returns the session's current sync sequence counter.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Runtime exposes the session's runtime port and handle, for collaborators
// (the Action-Space Rebinder) that must issue their own runtime calls.
func (s *Session) Runtime() (runtimeabi.Runtime, runtimeabi.Handle) {
	return s.rt, s.runtimeSession
}
