package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/sorenxr/xrshadow/internal/telemetry"
)

// AppsIndex is the decoded shape of <root>/apps/apps.json: human-readable
// application name to the random identifier minted for it on first
// sighting, per spec.md §6.
type AppsIndex map[string]string

// appsIndexPath returns <root>/apps/apps.json.
func (c Config) appsIndexPath() string {
	return filepath.Join(c.AppsDir(), "apps.json")
}

// LoadAppsIndex reads apps.json, returning an empty index if the file does
// not exist yet (first run).
func (c Config) LoadAppsIndex() (AppsIndex, error) {
	data, err := os.ReadFile(c.appsIndexPath())
	if os.IsNotExist(err) {
		return AppsIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("appconfig: read apps.json: %w", err)
	}
	var idx AppsIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("appconfig: decode apps.json: %w", err)
	}
	if idx == nil {
		idx = AppsIndex{}
	}
	return idx, nil
}

// saveAppsIndex writes idx to apps.json, creating the apps directory if needed.
func (c Config) saveAppsIndex(idx AppsIndex) error {
	if err := os.MkdirAll(c.AppsDir(), 0o755); err != nil {
		return fmt.Errorf("appconfig: mkdir apps dir: %w", err)
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("appconfig: encode apps.json: %w", err)
	}
	return os.WriteFile(c.appsIndexPath(), data, 0o644)
}

// identityMu serializes EnsureAppID across goroutines within one process;
// apps.json itself has no cross-process lock, matching the teacher's
// best-effort JSON file persistence (config files are not a database).
var identityMu sync.Mutex

// EnsureAppID returns the identifier for appName, minting and persisting a
// fresh random one via uuid.New on first sighting and re-using it on every
// later call, per spec.md §6's "Identifiers are generated on first sighting
// of an application and re-used thereafter."
func (c Config) EnsureAppID(appName string) (string, error) {
	identityMu.Lock()
	defer identityMu.Unlock()

	idx, err := c.LoadAppsIndex()
	if err != nil {
		return "", err
	}
	if id, ok := idx[appName]; ok {
		return id, nil
	}

	id := uuid.New().String()
	idx[appName] = id
	if err := c.saveAppsIndex(idx); err != nil {
		return "", err
	}
	telemetry.Log.WithField("app", appName).WithField("id", id).
		Info("appconfig: minted new application identifier")
	return id, nil
}

// AppDir returns <root>/apps/<id>, the per-application directory holding
// actions.json, default_bindings.json and bindings/custom_bindings.json.
func (c Config) AppDir(id string) string {
	return filepath.Join(c.AppsDir(), id)
}
