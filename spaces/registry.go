package spaces

import (
	"sync"

	"github.com/sorenxr/xrshadow/bindings"
	"github.com/sorenxr/xrshadow/internal/telemetry"
	"github.com/sorenxr/xrshadow/registry"
	"github.com/sorenxr/xrshadow/runtimeabi"
)

// Registry owns every Space created for a session and resyncs the ones
// belonging to a pose action each time that action is aggregated, via
// ResyncAction — installed as a bindings.Session's PoseHook.
type Registry struct {
	mu       sync.Mutex
	byHandle map[registry.Handle]*Space
	byAction map[*bindings.Action][]*Space
}

// NewRegistry creates an empty space registry for one session.
func NewRegistry() *Registry {
	return &Registry{
		byHandle: map[registry.Handle]*Space{},
		byAction: map[*bindings.Action][]*Space{},
	}
}

// Create mints a new action space for the given pose action and user
// path (the singleton slot if userPath is empty), returning the engine
// handle the application will use to refer to it.
func (r *Registry) Create(rt runtimeabi.Runtime, session runtimeabi.Handle, action *bindings.Action, userPath string, poseInAction runtimeabi.Pose) registry.Handle {
	sp := New(rt, session, action, userPath, poseInAction)
	h := registry.NewHandle()

	r.mu.Lock()
	r.byHandle[h] = sp
	r.byAction[action] = append(r.byAction[action], sp)
	r.mu.Unlock()

	return h
}

// Lookup resolves an engine handle to its Space.
func (r *Registry) Lookup(h registry.Handle) (*Space, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.byHandle[h]
	return sp, ok
}

// Destroy destroys the runtime space (if any) backing h and removes it
// from the registry.
func (r *Registry) Destroy(h registry.Handle) error {
	r.mu.Lock()
	sp, ok := r.byHandle[h]
	delete(r.byHandle, h)
	if ok {
		list := r.byAction[sp.action]
		for i, other := range list {
			if other == sp {
				r.byAction[sp.action] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return sp.Destroy()
}

// ResyncAction resyncs every space created against action. Installed as a
// bindings.Session's PoseHook, it runs once per sync for each active
// pose-typed application action, after that action's cached state has
// been re-aggregated (spec.md §4.4.3 step 4).
func (r *Registry) ResyncAction(action *bindings.Action) {
	r.mu.Lock()
	spacesForAction := append([]*Space(nil), r.byAction[action]...)
	r.mu.Unlock()

	for _, sp := range spacesForAction {
		if err := sp.Resync(); err != nil {
			telemetry.Log.WithError(err).Warn("spaces: resync failed, space kept in its previous state")
		}
	}
}
