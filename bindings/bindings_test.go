package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/registry"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/runtimeabi/fake"
	"github.com/sorenxr/xrshadow/shadow"
)

func newTestSession(t *testing.T) (*fake.Runtime, *Session, map[string]*shadow.ActionSet) {
	t.Helper()
	rt := fake.New()
	cat := catalog.Generate()
	shadowSets, err := shadow.Build(rt, cat)
	require.NoError(t, err)

	sessionHandle := runtimeabi.Handle(1)
	sess, err := NewSession(rt, sessionHandle, shadowSets)
	require.NoError(t, err)
	return rt, sess, shadowSets
}

func TestBooleanOROfTwoSources(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	fire := sess.DeclareAction(set, "fire", "Fire", catalog.ActionTypeBoolean, nil)
	sess.Suggest(fire, []string{"/user/hand/left" + touch.Actions["/input/x/click"].Suffix})
	sess.Suggest(fire, []string{"/user/hand/right" + touch.Actions["/input/a/click"].Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	xAction := touch.Actions["/input/x/click"]
	aAction := touch.Actions["/input/a/click"]

	rt.SetBoolean(xAction.Handle, mustPath(t, rt, "/user/hand/left"), false, true, 90)
	rt.SetBoolean(aAction.Handle, mustPath(t, rt, "/user/hand/right"), true, true, 100)

	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))

	st, err := sess.GetStateBoolean(fire, "")
	require.NoError(t, err)
	assert.True(t, st.Current)
	assert.True(t, st.IsActive)
	assert.EqualValues(t, 100, st.LastChangeTime)
}

func TestFloatMaxAbsoluteValue(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	squeeze := sess.DeclareAction(set, "squeeze", "Squeeze", catalog.ActionTypeFloat, nil)
	sq := touch.Actions["/input/squeeze/value"]
	sess.Suggest(squeeze, []string{"/user/hand/left" + sq.Suffix, "/user/hand/right" + sq.Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	rt.SetFloat(sq.Handle, mustPath(t, rt, "/user/hand/left"), 0.3, true, 10)
	rt.SetFloat(sq.Handle, mustPath(t, rt, "/user/hand/right"), -0.8, true, 20)

	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))

	st, err := sess.GetStateFloat(squeeze, "")
	require.NoError(t, err)
	assert.InDelta(t, -0.8, st.Current, 1e-6)
	assert.EqualValues(t, 20, st.LastChangeTime)
}

func TestVector2LongestLength(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	stick := sess.DeclareAction(set, "stick", "Stick", catalog.ActionTypeVector2, nil)
	ts := touch.Actions["/input/thumbstick"]
	sess.Suggest(stick, []string{"/user/hand/left" + ts.Suffix, "/user/hand/right" + ts.Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	rt.SetVector2(ts.Handle, mustPath(t, rt, "/user/hand/left"), 0.1, 0.1, true, 5)
	rt.SetVector2(ts.Handle, mustPath(t, rt, "/user/hand/right"), 0.9, 0.2, true, 6)

	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))

	st, err := sess.GetStateVector2(stick, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, st.X, 1e-6)
	assert.InDelta(t, 0.2, st.Y, 1e-6)
}

func TestFloatToBooleanCoercion(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	grab := sess.DeclareAction(set, "grab", "Grab", catalog.ActionTypeBoolean, nil)
	sq := touch.Actions["/input/squeeze/value"]
	sess.Suggest(grab, []string{"/user/hand/left" + sq.Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	rt.SetFloat(sq.Handle, mustPath(t, rt, "/user/hand/left"), 0.6, true, 1)
	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))

	st, err := sess.GetStateBoolean(grab, "")
	require.NoError(t, err)
	assert.True(t, st.Current)

	rt.SetFloat(sq.Handle, mustPath(t, rt, "/user/hand/left"), 0.2, true, 2)
	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))
	st, err = sess.GetStateBoolean(grab, "")
	require.NoError(t, err)
	assert.False(t, st.Current)
}

func TestHapticFanOut(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	simple := sets["/interaction_profiles/khr/simple_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	rumble := sess.DeclareAction(set, "rumble", "Rumble", catalog.ActionTypeVibration, nil)
	haptic := simple.Actions["/output/haptic"]
	sess.Suggest(rumble, []string{"/user/hand/left" + haptic.Suffix, "/user/hand/right" + haptic.Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	require.NoError(t, sess.ApplyHaptic(rumble, "", runtimeabi.Vibration{Amplitude: 1, Frequency: 180}))
	require.Len(t, rt.HapticCalls, 2)

	require.NoError(t, sess.StopHaptic(rumble, ""))
	require.Len(t, rt.HapticCalls, 4)
}

func TestSyncIdempotenceWithNoPhysicalChange(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	fire := sess.DeclareAction(set, "fire", "Fire", catalog.ActionTypeBoolean, nil)
	xClick := touch.Actions["/input/x/click"]
	sess.Suggest(fire, []string{"/user/hand/left" + xClick.Suffix})

	require.NoError(t, sess.Attach([]*ActionSet{set}))

	rt.SetBoolean(xClick.Handle, mustPath(t, rt, "/user/hand/left"), true, true, 100)
	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))
	st1, err := sess.GetStateBoolean(fire, "")
	require.NoError(t, err)
	assert.True(t, st1.ChangedSinceLastSync)

	require.NoError(t, sess.Sync([]registry.Handle{set.Handle}))
	st2, err := sess.GetStateBoolean(fire, "")
	require.NoError(t, err)
	assert.False(t, st2.ChangedSinceLastSync)
	assert.Equal(t, st1.Current, st2.Current)
}

func TestGetStateTypeMismatch(t *testing.T) {
	_, sess, _ := newTestSession(t)
	set := sess.DeclareActionSet("gameplay", "Gameplay")
	fire := sess.DeclareAction(set, "fire", "Fire", catalog.ActionTypeBoolean, nil)
	require.NoError(t, sess.Attach([]*ActionSet{set}))

	_, err := sess.GetStateFloat(fire, "")
	assert.Error(t, err)
}

func TestGetStatePathUnsupported(t *testing.T) {
	rt, sess, sets := newTestSession(t)
	touch := sets["/interaction_profiles/oculus/touch_controller"]

	set := sess.DeclareActionSet("gameplay", "Gameplay")
	fire := sess.DeclareAction(set, "fire", "Fire", catalog.ActionTypeBoolean, []string{"/user/hand/left"})
	xClick := touch.Actions["/input/x/click"]
	sess.Suggest(fire, []string{"/user/hand/left" + xClick.Suffix})
	require.NoError(t, sess.Attach([]*ActionSet{set}))

	_, err := rt.StringToPath("/user/hand/left")
	require.NoError(t, err)

	_, err = sess.GetStateBoolean(fire, "/user/hand/right")
	assert.Error(t, err)
}

func TestAttachTwiceFails(t *testing.T) {
	_, sess, _ := newTestSession(t)
	set := sess.DeclareActionSet("gameplay", "Gameplay")
	require.NoError(t, sess.Attach([]*ActionSet{set}))
	assert.Error(t, sess.Attach([]*ActionSet{set}))
}

func mustPath(t *testing.T, rt *fake.Runtime, str string) runtimeabi.Path {
	t.Helper()
	p, err := rt.StringToPath(str)
	require.NoError(t, err)
	return p
}
