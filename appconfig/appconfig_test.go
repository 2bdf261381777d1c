package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAppIDMintsOnceAndReuses(t *testing.T) {
	cfg := Config{Root: t.TempDir()}

	id1, err := cfg.EnsureAppID("My Game")
	require.NoError(t, err)
	assert.NotEmpty(t, id1)

	id2, err := cfg.EnsureAppID("My Game")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	idx, err := cfg.LoadAppsIndex()
	require.NoError(t, err)
	assert.Equal(t, id1, idx["My Game"])
}

func TestEnsureAppIDDistinctPerName(t *testing.T) {
	cfg := Config{Root: t.TempDir()}

	a, err := cfg.EnsureAppID("App A")
	require.NoError(t, err)
	b, err := cfg.EnsureAppID("App B")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestActionsFileRoundTrips(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	want := ActionsFile{
		AppName: "My Game",
		Sets: map[string]ActionSetSpec{
			"gameplay": {
				LocalizedName: "Gameplay",
				Actions: map[string]ActionSpec{
					"fire": {LocalizedName: "Fire", ActionType: "boolean", UserPaths: []string{"/user/hand/left", "/user/hand/right"}},
				},
			},
		},
	}

	require.NoError(t, cfg.SaveActions("app-1", want))
	got, err := cfg.LoadActions("app-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultBindingsRoundTrips(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	want := BindingsFile{
		"/interaction_profiles/khr/simple_controller": {
			"gameplay": {
				"fire": ActionBindingSpec{Bindings: []string{
					"/user/hand/left/input/select/click",
					"/user/hand/right/input/select/click",
				}},
			},
		},
	}

	require.NoError(t, cfg.SaveDefaultBindings("app-1", want))
	got, err := cfg.LoadDefaultBindings("app-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoaderPrefersCustomOverDefault(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	def := BindingsFile{
		"/interaction_profiles/khr/simple_controller": {
			"gameplay": {"fire": ActionBindingSpec{Bindings: []string{"/user/hand/left/input/select/click"}}},
		},
	}
	require.NoError(t, cfg.SaveDefaultBindings("app-1", def))

	loader := NewLoader(cfg)
	got, err := loader.Resolve("app-1")
	require.NoError(t, err)
	assert.Equal(t, def, got)

	custom := BindingsFile{
		"/interaction_profiles/valve/index_controller": {
			"gameplay": {"fire": ActionBindingSpec{Bindings: []string{"/user/hand/left/input/trigger/click"}}},
		},
	}
	require.NoError(t, saveBindingsFile(cfg.customBindingsPath("app-1"), custom))

	got, err = loader.Resolve("app-1")
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestLoaderEmptyWhenNothingPersisted(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	loader := NewLoader(cfg)
	got, err := loader.Resolve("never-seen")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBindingsFileLeafPaths(t *testing.T) {
	f := BindingsFile{
		"/interaction_profiles/khr/simple_controller": {
			"gameplay": {"fire": ActionBindingSpec{Bindings: []string{"/user/hand/left/input/select/click"}}},
		},
		"/interaction_profiles/valve/index_controller": {
			"gameplay": {"fire": ActionBindingSpec{Bindings: []string{"/user/hand/left/input/trigger/click"}}},
		},
	}

	leafs := f.LeafPaths("gameplay", "fire")
	assert.Len(t, leafs, 2)
	assert.Equal(t, []string{"/user/hand/left/input/select/click"}, leafs["/interaction_profiles/khr/simple_controller"])
}
