package bindings

import (
	"github.com/sorenxr/xrshadow/catalog"
	"github.com/sorenxr/xrshadow/runtimeabi"
	"github.com/sorenxr/xrshadow/xrerr"
)

// slotKey returns the Slots/BySlot key for a user path argument: the null
// path selects the singleton slot, any other value selects that user
// path's slot.
func slotKey(action *Action, userPath string) string {
	if userPath == "" {
		return ""
	}
	return userPath
}

func (s *Session) readSlot(action *Action, userPath string) (AggState, error) {
	if action.Cached == nil {
		return AggState{}, xrerr.New(xrerr.ActionSetNotAttached, "action %s's set is not attached", action.Name)
	}
	key := slotKey(action, userPath)
	action.Cached.mu.RLock()
	defer action.Cached.mu.RUnlock()
	slot, ok := action.Cached.slots[key]
	if !ok {
		return AggState{}, xrerr.New(xrerr.PathUnsupported, "action %s has no slot for user path %q", action.Name, userPath)
	}
	return *slot, nil
}

// GetStateBoolean implements the boolean get-state entry point, per
// spec.md §4.4.5.
func (s *Session) GetStateBoolean(action *Action, userPath string) (runtimeabi.StateBoolean, error) {
	if action.ActionType != catalog.ActionTypeBoolean {
		return runtimeabi.StateBoolean{}, xrerr.New(xrerr.ActionTypeMismatch, "action %s is not boolean", action.Name)
	}
	agg, err := s.readSlot(action, userPath)
	if err != nil {
		return runtimeabi.StateBoolean{}, err
	}
	return runtimeabi.StateBoolean{
		Current:              agg.BoolCurrent,
		IsActive:             agg.IsActive,
		ChangedSinceLastSync: agg.ChangedSinceLastSync,
		LastChangeTime:       agg.LastChangeTime,
	}, nil
}

// GetStateFloat implements the float get-state entry point.
func (s *Session) GetStateFloat(action *Action, userPath string) (runtimeabi.StateFloat, error) {
	if action.ActionType != catalog.ActionTypeFloat {
		return runtimeabi.StateFloat{}, xrerr.New(xrerr.ActionTypeMismatch, "action %s is not float", action.Name)
	}
	agg, err := s.readSlot(action, userPath)
	if err != nil {
		return runtimeabi.StateFloat{}, err
	}
	return runtimeabi.StateFloat{
		Current:              agg.FloatCurrent,
		IsActive:             agg.IsActive,
		ChangedSinceLastSync: agg.ChangedSinceLastSync,
		LastChangeTime:       agg.LastChangeTime,
	}, nil
}

// GetStateVector2 implements the vector2 get-state entry point.
func (s *Session) GetStateVector2(action *Action, userPath string) (runtimeabi.StateVector2, error) {
	if action.ActionType != catalog.ActionTypeVector2 {
		return runtimeabi.StateVector2{}, xrerr.New(xrerr.ActionTypeMismatch, "action %s is not vector2", action.Name)
	}
	agg, err := s.readSlot(action, userPath)
	if err != nil {
		return runtimeabi.StateVector2{}, err
	}
	return runtimeabi.StateVector2{
		X:                    agg.VecX,
		Y:                    agg.VecY,
		IsActive:             agg.IsActive,
		ChangedSinceLastSync: agg.ChangedSinceLastSync,
		LastChangeTime:       agg.LastChangeTime,
	}, nil
}

// GetStatePose implements the pose get-state entry point.
func (s *Session) GetStatePose(action *Action, userPath string) (runtimeabi.StatePose, error) {
	if action.ActionType != catalog.ActionTypePose {
		return runtimeabi.StatePose{}, xrerr.New(xrerr.ActionTypeMismatch, "action %s is not pose", action.Name)
	}
	agg, err := s.readSlot(action, userPath)
	if err != nil {
		return runtimeabi.StatePose{}, err
	}
	return runtimeabi.StatePose{IsActive: agg.IsActive}, nil
}

// outputRecords returns the output Binding Records for a haptic call,
// filtered by the requested user path, per spec.md §4.4.6.
func outputRecords(action *Action, userPath string) ([]*Record, error) {
	if action.View == nil {
		return nil, xrerr.New(xrerr.ActionSetNotAttached, "action %s's set is not attached", action.Name)
	}
	key := slotKey(action, userPath)
	recs, ok := action.View.BySlot[key]
	if !ok {
		return nil, xrerr.New(xrerr.PathUnsupported, "action %s has no slot for user path %q", action.Name, userPath)
	}
	return recs, nil
}

// ApplyHaptic forwards a haptic call once per resolved output binding,
// substituting each shadow action's handle. The first failure surfaces
// immediately.
func (s *Session) ApplyHaptic(action *Action, userPath string, vibration runtimeabi.Vibration) error {
	if action.ActionType != catalog.ActionTypeVibration {
		return xrerr.New(xrerr.ActionTypeMismatch, "action %s is not a haptic action", action.Name)
	}
	recs, err := outputRecords(action, userPath)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := s.rt.ApplyHapticFeedback(s.runtimeSession, r.ShadowAction.Handle, r.UserPathAtom, vibration); err != nil {
			return xrerr.Wrap(xrerr.RuntimeFailure, err, "apply_haptic_feedback")
		}
	}
	return nil
}

// StopHaptic forwards a stop-haptics call once per resolved output
// binding.
func (s *Session) StopHaptic(action *Action, userPath string) error {
	if action.ActionType != catalog.ActionTypeVibration {
		return xrerr.New(xrerr.ActionTypeMismatch, "action %s is not a haptic action", action.Name)
	}
	recs, err := outputRecords(action, userPath)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := s.rt.StopHapticFeedback(s.runtimeSession, r.ShadowAction.Handle, r.UserPathAtom); err != nil {
			return xrerr.Wrap(xrerr.RuntimeFailure, err, "stop_haptic_feedback")
		}
	}
	return nil
}
