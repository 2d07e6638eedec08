package services

import (
	"testing"

	"pingly_server/models"
)

func TestEvaluateGesture(t *testing.T) {
	cases := []struct {
		name     string
		offset   float64
		velocity float64
		want     models.Decision
	}{
		{"resting", 0, 0, models.DecisionNone},
		{"distance at threshold", 100, 0, models.DecisionNone},
		{"distance just past threshold", 100.5, 0, models.DecisionLike},
		{"negative distance at threshold", -100, 0, models.DecisionNone},
		{"negative distance past threshold", -101, 0, models.DecisionPass},
		{"velocity at threshold", 0, 500, models.DecisionNone},
		{"flick right", 10, 501, models.DecisionLike},
		{"flick left", -10, -501, models.DecisionPass},
		{"distance wins over opposite velocity", 120, -600, models.DecisionLike},
		{"negative distance wins over opposite velocity", -120, 600, models.DecisionPass},
		{"short slow drag", 60, 200, models.DecisionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateGesture(tc.offset, tc.velocity); got != tc.want {
				t.Fatalf("EvaluateGesture(%v, %v) = %q, want %q", tc.offset, tc.velocity, got, tc.want)
			}
		})
	}
}

func TestDragDirection(t *testing.T) {
	cases := []struct {
		offset float64
		want   Direction
	}{
		{0, DirectionNone},
		{50, DirectionNone},
		{-50, DirectionNone},
		{51, DirectionRight},
		{-51, DirectionLeft},
	}
	for _, tc := range cases {
		if got := DragDirection(tc.offset); got != tc.want {
			t.Fatalf("DragDirection(%v) = %q, want %q", tc.offset, got, tc.want)
		}
	}
}
