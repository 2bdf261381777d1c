package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate()
	b := Generate()
	assert.Equal(t, a.SortedPaths(), b.SortedPaths())
	for _, path := range a.SortedPaths() {
		assert.Equal(t, a.Profiles[path].SortedSubpaths(), b.Profiles[path].SortedSubpaths())
	}
}

func TestFeatureCanonicalType(t *testing.T) {
	cases := []struct {
		feature Feature
		want    ActionType
		ok      bool
	}{
		{FeatureClick, ActionTypeBoolean, true},
		{FeatureTouch, ActionTypeBoolean, true},
		{FeatureForce, ActionTypeFloat, true},
		{FeatureValue, ActionTypeFloat, true},
		{FeatureTwist, ActionTypeFloat, true},
		{FeaturePosition, ActionTypeVector2, true},
		{FeaturePose, ActionTypePose, true},
		{FeatureHaptic, ActionTypeVibration, true},
		{FeatureUnknown, 0, false},
	}
	for _, c := range cases {
		got, ok := c.feature.CanonicalType()
		assert.Equal(t, c.ok, ok, c.feature)
		if ok {
			assert.Equal(t, c.want, got, c.feature)
		}
	}
}

func TestSideMatches(t *testing.T) {
	assert.True(t, SideNone.Matches("/user/hand/left"))
	assert.True(t, SideLeft.Matches("/user/hand/left"))
	assert.False(t, SideLeft.Matches("/user/hand/right"))
	assert.True(t, SideRight.Matches("/user/hand/right"))
}

func TestCatalogHasExpectedProfiles(t *testing.T) {
	cat := Generate()
	require.Contains(t, cat.Profiles, "/interaction_profiles/khr/simple_controller")
	require.Contains(t, cat.Profiles, "/interaction_profiles/oculus/touch_controller")

	touch := cat.Profiles["/interaction_profiles/oculus/touch_controller"]
	sub, ok := touch.Subpaths["/input/thumbstick"]
	require.True(t, ok)
	assert.Contains(t, sub.Features, FeaturePosition)
}
