package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sorenxr/xrshadow/internal/telemetry"
)

// ActionBindingSpec is the leaf-path list suggested for one action under one
// (profile, set) pair, the innermost shape of default_bindings.json /
// custom_bindings.json.
type ActionBindingSpec struct {
	Bindings []string `json:"bindings"`
}

// SetBindingSpec maps action name to its suggested leaf paths, within one
// profile.
type SetBindingSpec map[string]ActionBindingSpec

// BindingsFile is the full decoded shape of default_bindings.json /
// custom_bindings.json: profile path -> set name -> action name -> leaf
// paths, per spec.md §6.
type BindingsFile map[string]map[string]SetBindingSpec

func (c Config) defaultBindingsPath(appID string) string {
	return filepath.Join(c.AppDir(appID), "default_bindings.json")
}

func (c Config) customBindingsPath(appID string) string {
	return filepath.Join(c.AppDir(appID), "bindings", "custom_bindings.json")
}

func loadBindingsFile(path string) (BindingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f BindingsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("appconfig: decode %s: %w", path, err)
	}
	return f, nil
}

func saveBindingsFile(path string, f BindingsFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("appconfig: mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("appconfig: encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveDefaultBindings writes the bindings the application suggested via the
// suggest-bindings operation, per spec.md §4.3/§6. Nothing in the engine
// calls it: the shadow and bindings packages do not import appconfig.
func (c Config) SaveDefaultBindings(appID string, f BindingsFile) error {
	return saveBindingsFile(c.defaultBindingsPath(appID), f)
}

// LoadDefaultBindings reads default_bindings.json for appID.
func (c Config) LoadDefaultBindings(appID string) (BindingsFile, error) {
	return loadBindingsFile(c.defaultBindingsPath(appID))
}

// Loader resolves, for one application, which BindingsFile is in effect:
// custom_bindings.json when present (the end user remapped
// this application's controls), falling back to default_bindings.json
// otherwise, per spec.md §6's "when present, overrides the default."
type Loader struct {
	cfg Config
}

// NewLoader builds a Loader bound to cfg.
func NewLoader(cfg Config) Loader { return Loader{cfg: cfg} }

// Resolve returns the effective bindings file for appID: custom if present,
// else default. The bindings package's attach step does not call this (per
// spec.md §9, re-reading custom_bindings.json at runtime is left to
// implementer discretion); its only caller is the xrshadowctl inspect
// subcommand, as an offline read that never touches a live session.
func (l Loader) Resolve(appID string) (BindingsFile, error) {
	custom, err := loadBindingsFile(l.cfg.customBindingsPath(appID))
	if err == nil {
		telemetry.Log.WithField("app_id", appID).
			Info("appconfig: using custom_bindings.json override")
		return custom, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	def, err := l.cfg.LoadDefaultBindings(appID)
	if err != nil {
		if os.IsNotExist(err) {
			return BindingsFile{}, nil
		}
		return nil, err
	}
	return def, nil
}

// LeafPaths flattens f into the (profile path -> leaf path list) shape the
// bindings package's Session.Suggest wants, one call per (set, action)
// pair found in f for the named set/action.
func (f BindingsFile) LeafPaths(setName, actionName string) map[string][]string {
	out := map[string][]string{}
	for profile, sets := range f {
		set, ok := sets[setName]
		if !ok {
			continue
		}
		spec, ok := set[actionName]
		if !ok {
			continue
		}
		out[profile] = spec.Bindings
	}
	return out
}
