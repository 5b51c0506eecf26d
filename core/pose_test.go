package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBladeSegmentEndpoints(t *testing.T) {
	seg := NewBladeSegment(BladePose{
		Center:    mgl64.Vec3{1, 2, 3},
		Direction: mgl64.Vec3{0, 2, 0},
	}, 0.5)

	if got := seg.Start(); !got.ApproxEqual(mgl64.Vec3{1, 1.5, 3}) {
		t.Errorf("Start = %v", got)
	}
	if got := seg.End(); !got.ApproxEqual(mgl64.Vec3{1, 2.5, 3}) {
		t.Errorf("End = %v", got)
	}
}

func TestBladeSegmentZeroDirection(t *testing.T) {
	seg := NewBladeSegment(BladePose{}, 0.5)
	if seg.Direction != BladeAxis {
		t.Fatalf("zero direction should fall back to %v, got %v", BladeAxis, seg.Direction)
	}
}
