package posescript

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wesen/dancelight/pkg/compositor"
	"github.com/wesen/dancelight/pkg/skeleton"
)

func mustCompile(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Compile("test.js", src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

// ── Compile ──

func TestCompileSyntaxError(t *testing.T) {
	if _, err := Compile("bad.js", "function pose( {"); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestCompileWithoutPose(t *testing.T) {
	_, err := Compile("nopose.js", "var x = 1;")
	if !errors.Is(err, ErrNoPoseFunc) {
		t.Fatalf("expected ErrNoPoseFunc, got %v", err)
	}
}

func TestPrintCollectsOutput(t *testing.T) {
	s := mustCompile(t, `print("hello", 42); function pose(f) { print("frame", f); return {}; }`)
	if _, err := s.Pose(7); err != nil {
		t.Fatalf("Pose: %v", err)
	}
	got := strings.Join(s.Output, "\n")
	if got != "hello 42\nframe 7" {
		t.Errorf("output = %q", got)
	}
}

// ── Pose decoding ──

func TestPoseValueForms(t *testing.T) {
	s := mustCompile(t, `
function pose(frame) {
  return {
    Head: [0, 0.5, 2],
    spine_mid: {x: 0.1, y: frame / 10, z: 2, state: "inferred"},
    HandLeft: null,
    HandRight: {x: 1, y: 1, state: "nottracked"},
  };
}`)
	sk, err := s.Pose(3)
	if err != nil {
		t.Fatalf("Pose: %v", err)
	}

	head := sk.Lookup(skeleton.Head)
	if head.State != skeleton.Tracked || head.Position != (skeleton.Point{X: 0, Y: 0.5, Z: 2}) {
		t.Errorf("head = %+v", head)
	}
	mid := sk.Lookup(skeleton.SpineMid)
	if mid.State != skeleton.Inferred || mid.Position.X != 0.1 || mid.Position.Y != 0.3 {
		t.Errorf("spine mid = %+v", mid)
	}
	for _, jt := range []skeleton.JointType{skeleton.HandLeft, skeleton.HandRight, skeleton.FootLeft} {
		if sk.IsTracked(jt) {
			t.Errorf("%v should not be tracked", jt)
		}
	}
}

func TestPoseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null result", "return null;"},
		{"not an object", "return 3;"},
		{"unknown joint", "return {Tail: [0, 0, 0]};"},
		{"short array", "return {Head: [1]};"},
		{"non-numeric", `return {Head: ["a", 0, 0]};`},
		{"missing y", "return {Head: {x: 0}};"},
		{"bad state", `return {Head: {x: 0, y: 0, state: "maybe"}};`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustCompile(t, "function pose(frame) { "+tt.body+" }")
			_, err := s.Pose(0)
			if !errors.Is(err, ErrBadPose) {
				t.Fatalf("expected ErrBadPose, got %v", err)
			}
		})
	}
}

func TestPoseException(t *testing.T) {
	s := mustCompile(t, `function pose(frame) { throw new Error("boom"); }`)
	_, err := s.Pose(0)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected the JS error, got %v", err)
	}
}

func TestPoseTimeout(t *testing.T) {
	s := mustCompile(t, `function pose(frame) { if (frame > 0) { for (;;) {} } return {}; }`)
	s.Timeout = 20 * time.Millisecond

	if _, err := s.Pose(1); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	// The runtime is usable again after an interrupt.
	if _, err := s.Pose(0); err != nil {
		t.Fatalf("Pose after timeout: %v", err)
	}
}

// ── Default dance ──

func TestDefaultDanceDrawsEveryBodyPart(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	c, err := compositor.New(compositor.DefaultOptions())
	if err != nil {
		t.Fatalf("compositor.New: %v", err)
	}
	for frame := 0; frame < 90; frame += 7 {
		sk, err := s.Pose(frame)
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		c.RenderFrame(sk)
		st := c.Stats()
		if !st.HeadDrawn || st.SkippedUntracked != 0 || st.SkippedOutOfBounds != 0 {
			t.Errorf("frame %d: incomplete figure %+v", frame, st)
		}
	}
}

func TestDefaultDanceIsDeterministic(t *testing.T) {
	a, _ := Default()
	b, _ := Default()
	pa, err := a.Pose(42)
	if err != nil {
		t.Fatal(err)
	}
	pb, _ := b.Pose(42)
	for _, jt := range skeleton.AllJoints() {
		if pa.Lookup(jt) != pb.Lookup(jt) {
			t.Errorf("%v differs between runs", jt)
		}
	}
}
