// Package posescript drives skeleton frames from a JavaScript animation
// running in Goja.
//
// A script defines a global function pose(frame) that returns an object
// keyed by joint name. Each value is [x, y, z], {x, y, z, state} or null.
// Joints that are null or absent are NotTracked.
package posescript

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/wesen/dancelight/pkg/skeleton"
)

var (
	// ErrNoPoseFunc means the script does not define pose(frame).
	ErrNoPoseFunc = errors.New("posescript: script defines no pose function")
	// ErrBadPose wraps malformed pose results.
	ErrBadPose = errors.New("posescript: malformed pose")
	// ErrTimeout means pose(frame) ran past the script's time budget.
	ErrTimeout = errors.New("posescript: pose timed out")
)

// DefaultTimeout is the per-frame time budget.
const DefaultTimeout = 100 * time.Millisecond

//go:embed dance.js
var danceJS string

// Script is a compiled pose animation. It is not safe for concurrent use.
type Script struct {
	Name    string
	Timeout time.Duration
	Output  []string // lines written with print()

	runtime *goja.Runtime
	pose    goja.Callable
}

// Compile runs src once and looks up its pose function.
func Compile(name, src string) (*Script, error) {
	s := &Script{Name: name, Timeout: DefaultTimeout, runtime: goja.New()}

	s.runtime.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		s.Output = append(s.Output, strings.Join(parts, " "))
		return goja.Undefined()
	})

	if _, err := s.runtime.RunScript(name, src); err != nil {
		return nil, fmt.Errorf("posescript: compile %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(s.runtime.Get("pose"))
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrNoPoseFunc, name)
	}
	s.pose = fn
	return s, nil
}

// Default compiles the built-in dance.
func Default() (*Script, error) {
	return Compile("dance.js", danceJS)
}

// Pose evaluates pose(frame) and converts the result.
func (s *Script) Pose(frame int) (skeleton.Skeleton, error) {
	var timer *time.Timer
	if s.Timeout > 0 {
		timer = time.AfterFunc(s.Timeout, func() {
			s.runtime.Interrupt(ErrTimeout)
		})
	}

	v, err := s.pose(goja.Undefined(), s.runtime.ToValue(frame))
	if timer != nil {
		timer.Stop()
	}
	s.runtime.ClearInterrupt()
	if err != nil {
		var ie *goja.InterruptedError
		if errors.As(err, &ie) {
			return nil, fmt.Errorf("%w: frame %d", ErrTimeout, frame)
		}
		return nil, fmt.Errorf("posescript: %s frame %d: %w", s.Name, frame, err)
	}
	return decodePose(v)
}

func decodePose(v goja.Value) (skeleton.Skeleton, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("%w: pose returned nothing", ErrBadPose)
	}
	obj, ok := v.Export().(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrBadPose, v.ExportType())
	}
	s := skeleton.Skeleton{}
	for name, raw := range obj {
		jt, err := skeleton.ParseJointType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadPose, err)
		}
		j, err := decodeJoint(jt, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadPose, name, err)
		}
		if j.State != skeleton.NotTracked {
			s.Set(j)
		}
	}
	return s, nil
}

func decodeJoint(jt skeleton.JointType, raw interface{}) (skeleton.Joint, error) {
	j := skeleton.Joint{Type: jt, State: skeleton.Tracked}
	switch val := raw.(type) {
	case nil:
		j.State = skeleton.NotTracked
		return j, nil
	case []interface{}:
		if len(val) < 2 || len(val) > 3 {
			return j, fmt.Errorf("expected [x, y, z], got %d values", len(val))
		}
		xyz := [3]float64{}
		for i, e := range val {
			f, ok := number(e)
			if !ok {
				return j, fmt.Errorf("coordinate %d is not a number", i)
			}
			xyz[i] = f
		}
		j.Position = skeleton.Point{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	case map[string]interface{}:
		for i, key := range []string{"x", "y", "z"} {
			e, present := val[key]
			if !present {
				if key == "z" {
					continue
				}
				return j, fmt.Errorf("missing %q", key)
			}
			f, ok := number(e)
			if !ok {
				return j, fmt.Errorf("%q is not a number", key)
			}
			switch i {
			case 0:
				j.Position.X = f
			case 1:
				j.Position.Y = f
			default:
				j.Position.Z = f
			}
		}
		if st, present := val["state"]; present {
			str, ok := st.(string)
			if !ok {
				return j, fmt.Errorf("state must be a string")
			}
			state, err := skeleton.ParseTrackingState(str)
			if err != nil {
				return j, err
			}
			j.State = state
		}
	default:
		return j, fmt.Errorf("unsupported value %T", raw)
	}
	return j, nil
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case int:
		return float64(n), true
	}
	return 0, false
}
