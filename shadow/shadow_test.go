package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/runtimeabi/fake"
)

func TestEscapeProfilePath(t *testing.T) {
	assert.Equal(t, "-interaction_profiles-khr-simple_controller", EscapeProfilePath("/interaction_profiles/khr/simple_controller"))
	assert.Equal(t, "a--b", EscapeProfilePath("a-b"))
	assert.Equal(t, "a----b", EscapeProfilePath("a--b"))
}

func TestBuildCreatesOneSetPerProfile(t *testing.T) {
	rt := fake.New()
	cat := catalog.Generate()

	sets, err := Build(rt, cat)
	require.NoError(t, err)
	assert.Len(t, sets, len(cat.Profiles))

	for path := range cat.Profiles {
		_, ok := sets[path]
		assert.True(t, ok, "missing shadow set for %s", path)
	}
}

func TestPositionSplitsIntoThreeActions(t *testing.T) {
	rt := fake.New()
	cat := catalog.Generate()

	sets, err := Build(rt, cat)
	require.NoError(t, err)

	touch := sets["/interaction_profiles/oculus/touch_controller"]
	require.NotNil(t, touch)

	x, ok := touch.Actions["/input/thumbstick/x"]
	require.True(t, ok)
	assert.Equal(t, catalog.ActionTypeFloat, x.ActionType)

	y, ok := touch.Actions["/input/thumbstick/y"]
	require.True(t, ok)
	assert.Equal(t, catalog.ActionTypeFloat, y.ActionType)

	vec, ok := touch.Actions["/input/thumbstick"]
	require.True(t, ok)
	assert.Equal(t, catalog.ActionTypeVector2, vec.ActionType)
}

func TestHapticActionIsVibrationType(t *testing.T) {
	rt := fake.New()
	cat := catalog.Generate()

	sets, err := Build(rt, cat)
	require.NoError(t, err)

	simple := sets["/interaction_profiles/khr/simple_controller"]
	haptic, ok := simple.Actions["/output/haptic"]
	require.True(t, ok)
	assert.Equal(t, catalog.ActionTypeVibration, haptic.ActionType)
}

func TestSideFilterRestrictsUserPaths(t *testing.T) {
	rt := fake.New()
	cat := catalog.Generate()

	sets, err := Build(rt, cat)
	require.NoError(t, err)

	touch := sets["/interaction_profiles/oculus/touch_controller"]
	xClick := touch.Actions["/input/x/click"]
	require.NotNil(t, xClick)
	assert.Equal(t, []string{"/user/hand/left"}, xClick.UserPaths)

	aClick := touch.Actions["/input/a/click"]
	require.NotNil(t, aClick)
	assert.Equal(t, []string{"/user/hand/right"}, aClick.UserPaths)
	// both are generated from bare catalog subpaths ("/input/x", "/input/a")
	// with the click feature appended by the factory.
}

func TestSuggestedBindingsSubmittedPerProfile(t *testing.T) {
	rt := fake.New()
	cat := catalog.Generate()

	_, err := Build(rt, cat)
	require.NoError(t, err)

	profilePath, err := rt.StringToPath("/interaction_profiles/khr/simple_controller")
	require.NoError(t, err)
	assert.NotEmpty(t, rt.SuggestedBindings[profilePath])
}

func TestSubmissionFailureDoesNotAbortBuild(t *testing.T) {
	rt := fake.New()
	rt.SuggestFailures["/interaction_profiles/khr/simple_controller"] = true
	cat := catalog.Generate()

	sets, err := Build(rt, cat)
	require.NoError(t, err)
	assert.Contains(t, sets, "/interaction_profiles/khr/simple_controller")
}
