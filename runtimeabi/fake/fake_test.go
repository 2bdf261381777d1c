package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/runtimeabi"
)

func TestCreateActionSetAndAction(t *testing.T) {
	rt := New()
	set, err := rt.CreateActionSet("gameplay", "Gameplay")
	require.NoError(t, err)

	act, err := rt.CreateAction(set, "click", "Click", catalog.ActionTypeBoolean, nil)
	require.NoError(t, err)
	assert.NotZero(t, act)
}

func TestCreateActionUnknownSetFails(t *testing.T) {
	rt := New()
	_, err := rt.CreateAction(999, "click", "Click", catalog.ActionTypeBoolean, nil)
	assert.Error(t, err)
}

func TestPathRoundTrip(t *testing.T) {
	rt := New()
	p1, err := rt.StringToPath("/user/hand/left")
	require.NoError(t, err)
	p2, err := rt.StringToPath("/user/hand/left")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	s, err := rt.PathToString(p1)
	require.NoError(t, err)
	assert.Equal(t, "/user/hand/left", s)
}

func TestBooleanChangedSinceLastSync(t *testing.T) {
	rt := New()
	set, _ := rt.CreateActionSet("gameplay", "Gameplay")
	act, _ := rt.CreateAction(set, "click", "Click", catalog.ActionTypeBoolean, nil)

	rt.SetBoolean(act, 0, true, true, 100)
	st, err := rt.GetActionStateBoolean(0, act, 0)
	require.NoError(t, err)
	assert.True(t, st.Current)
	assert.True(t, st.ChangedSinceLastSync)
	assert.EqualValues(t, 100, st.LastChangeTime)

	st2, err := rt.GetActionStateBoolean(0, act, 0)
	require.NoError(t, err)
	assert.False(t, st2.ChangedSinceLastSync)

	rt.SetBoolean(act, 0, false, true, 110)
	st3, err := rt.GetActionStateBoolean(0, act, 0)
	require.NoError(t, err)
	assert.True(t, st3.ChangedSinceLastSync)
	assert.False(t, st3.Current)
}

func TestFloatAndVector2State(t *testing.T) {
	rt := New()
	set, _ := rt.CreateActionSet("gameplay", "Gameplay")
	act, _ := rt.CreateAction(set, "squeeze", "Squeeze", catalog.ActionTypeFloat, nil)

	rt.SetFloat(act, 0, 0.75, true, 50)
	st, err := rt.GetActionStateFloat(0, act, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, st.Current, 1e-6)
	assert.True(t, st.IsActive)

	vact, _ := rt.CreateAction(set, "thumbstick", "Thumbstick", catalog.ActionTypeVector2, nil)
	rt.SetVector2(vact, 0, 0.3, -0.4, true, 60)
	vst, err := rt.GetActionStateVector2(0, vact, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, vst.X, 1e-6)
	assert.InDelta(t, -0.4, vst.Y, 1e-6)
}

func TestHapticCallsRecorded(t *testing.T) {
	rt := New()
	set, _ := rt.CreateActionSet("gameplay", "Gameplay")
	act, _ := rt.CreateAction(set, "haptic", "Haptic", catalog.ActionTypeVibration, nil)

	require.NoError(t, rt.ApplyHapticFeedback(1, act, 0, runtimeabi.Vibration{Amplitude: 1, Frequency: 160}))
	require.NoError(t, rt.StopHapticFeedback(1, act, 0))

	require.Len(t, rt.HapticCalls, 2)
	assert.False(t, rt.HapticCalls[0].Stop)
	assert.True(t, rt.HapticCalls[1].Stop)
}

func TestSuggestInteractionProfileBindingsFailureInjection(t *testing.T) {
	rt := New()
	profile, _ := rt.StringToPath("/interaction_profiles/khr/simple_controller")
	rt.SuggestFailures["/interaction_profiles/khr/simple_controller"] = true

	err := rt.SuggestInteractionProfileBindings(profile, nil)
	assert.Error(t, err)
}

func TestLocateSpaceDefaultsToIdentity(t *testing.T) {
	rt := New()
	loc, err := rt.LocateSpace(1, 2, 0)
	require.NoError(t, err)
	assert.True(t, loc.OrientationValid)
	assert.Equal(t, float32(1), loc.Pose.OrientW)
}

func TestLocateViewsReturnsRequestedCount(t *testing.T) {
	rt := New()
	views, err := rt.LocateViews(1, 2, 0, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
