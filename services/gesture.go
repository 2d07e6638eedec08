package services

import (
	"time"

	"pingly_server/models"
)

const (
	// SwipeDistanceThreshold is the drag offset a release must exceed to commit.
	SwipeDistanceThreshold = 100.0
	// SwipeVelocityThreshold is the release speed (units/sec) that commits a flick.
	SwipeVelocityThreshold = 500.0
	// DragIndicatorThreshold is the offset at which the like/pass badge shows.
	DragIndicatorThreshold = 50.0
	// DefaultSettleDelay lets a button-triggered exit animation finish before the
	// stack mutates.
	DefaultSettleDelay = 300 * time.Millisecond
)

// Direction is the exit or indicator direction of the top card.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// SwipePhase is a state of the drag state machine.
type SwipePhase string

const (
	PhaseIdle          SwipePhase = "idle"
	PhaseDragging      SwipePhase = "dragging"
	PhaseCommittedLike SwipePhase = "committed_like"
	PhaseCommittedPass SwipePhase = "committed_pass"
	PhaseSnappedBack   SwipePhase = "snapped_back"
)

// EvaluateGesture converts a released drag into a decision. Either distance or
// velocity past its threshold commits; both comparisons are strict. When the two
// disagree in sign, the distance decides.
func EvaluateGesture(offset, velocity float64) models.Decision {
	switch {
	case offset > SwipeDistanceThreshold:
		return models.DecisionLike
	case offset < -SwipeDistanceThreshold:
		return models.DecisionPass
	case velocity > SwipeVelocityThreshold:
		return models.DecisionLike
	case velocity < -SwipeVelocityThreshold:
		return models.DecisionPass
	default:
		return models.DecisionNone
	}
}

// DragDirection returns the indicator to show for a live drag offset.
func DragDirection(offset float64) Direction {
	switch {
	case offset > DragIndicatorThreshold:
		return DirectionRight
	case offset < -DragIndicatorThreshold:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

func exitDirection(d models.Decision) Direction {
	if d == models.DecisionLike {
		return DirectionRight
	}
	return DirectionLeft
}

func committedPhase(d models.Decision) SwipePhase {
	if d == models.DecisionLike {
		return PhaseCommittedLike
	}
	return PhaseCommittedPass
}
