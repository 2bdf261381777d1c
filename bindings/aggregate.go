package bindings

import "github.com/sorenxr/xrshadow/runtimeabi"

// AggState is one cached slot's aggregated value: shape covers all four
// action types, only the fields relevant to the slot's action type are
// meaningful. Ported from OxideActionState::sync_from_god_states's four
// trait impls (layer/src/god_actions.rs) into one explicit struct per
// spec.md §4.4.4.
type AggState struct {
	IsActive             bool
	BoolCurrent          bool
	FloatCurrent         float32
	VecX, VecY           float32
	LastChangeTime       runtimeabi.Time
	ChangedSinceLastSync bool
}

// aggregateBoolean implements the boolean-OR rule: is-active if any bound
// record is active; current is the OR of active records' values; the
// last-change-time takes the earliest rising edge among the records
// reporting true, or the latest falling edge among the (all-false) active
// records, matching spec.md §4.4.4 literally.
func aggregateBoolean(records []*Record, prev AggState) AggState {
	var anyActive, current bool
	var trueTimes, falseTimes []runtimeabi.Time
	for _, r := range records {
		isActive, value, changeTime, ok := r.boolValue()
		if !ok || !isActive {
			continue
		}
		anyActive = true
		if value {
			current = true
			trueTimes = append(trueTimes, changeTime)
		} else {
			falseTimes = append(falseTimes, changeTime)
		}
	}

	if !anyActive {
		changed := prev.IsActive || prev.BoolCurrent
		return AggState{ChangedSinceLastSync: changed}
	}

	lastChange := prev.LastChangeTime
	switch {
	case current && !prev.BoolCurrent:
		lastChange = minTime(trueTimes)
	case !current && prev.BoolCurrent:
		lastChange = maxTime(falseTimes)
	}

	changed := current != prev.BoolCurrent
	return AggState{IsActive: true, BoolCurrent: current, LastChangeTime: lastChange, ChangedSinceLastSync: changed}
}

// aggregateFloat picks the bound record with the greatest absolute value;
// ties resolve to the first encountered, matching iteration order.
func aggregateFloat(records []*Record, prev AggState) AggState {
	var anyActive bool
	var best float32
	var bestAbs float32 = -1
	var bestTime runtimeabi.Time

	for _, r := range records {
		isActive, value, changeTime, ok := r.floatValue()
		if !ok || !isActive {
			continue
		}
		anyActive = true
		abs := value
		if abs < 0 {
			abs = -abs
		}
		if abs > bestAbs {
			bestAbs = abs
			best = value
			bestTime = changeTime
		}
	}

	if !anyActive {
		changed := prev.IsActive || prev.FloatCurrent != 0
		return AggState{ChangedSinceLastSync: changed}
	}

	changed := best != prev.FloatCurrent
	return AggState{IsActive: true, FloatCurrent: best, LastChangeTime: bestTime, ChangedSinceLastSync: changed}
}

// aggregateVector2 picks the bound record with the longest vector,
// comparing squared length to avoid a square root.
func aggregateVector2(records []*Record, prev AggState) AggState {
	var anyActive bool
	var bestX, bestY float32
	var bestLenSq float32 = -1
	var bestTime runtimeabi.Time

	for _, r := range records {
		isActive, x, y, changeTime, ok := r.vector2Value()
		if !ok || !isActive {
			continue
		}
		anyActive = true
		lenSq := x*x + y*y
		if lenSq > bestLenSq {
			bestLenSq = lenSq
			bestX, bestY = x, y
			bestTime = changeTime
		}
	}

	if !anyActive {
		changed := prev.IsActive || prev.VecX != 0 || prev.VecY != 0
		return AggState{ChangedSinceLastSync: changed}
	}

	changed := bestX != prev.VecX || bestY != prev.VecY
	return AggState{IsActive: true, VecX: bestX, VecY: bestY, LastChangeTime: bestTime, ChangedSinceLastSync: changed}
}

// aggregatePose reports only whether any bound pose record is active; pose
// has no value to aggregate, the pose itself comes from locating the
// action's space.
func aggregatePose(records []*Record) AggState {
	var anyActive bool
	for _, r := range records {
		isActive, ok := r.poseActiveValue()
		if ok && isActive {
			anyActive = true
			break
		}
	}
	return AggState{IsActive: anyActive}
}

func minTime(ts []runtimeabi.Time) runtimeabi.Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t < m {
			m = t
		}
	}
	return m
}

func maxTime(ts []runtimeabi.Time) runtimeabi.Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t > m {
			m = t
		}
	}
	return m
}
