package animation

import (
	"fmt"
	"math"
)

// Easing curves map linear animation progress in [0, 1] to an interpolation
// factor. Named curves are closed form; [CubicBezier] matches CSS
// cubic-bezier() and solves for the curve parameter numerically.
//
// Every curve returns exactly 0 at progress 0 and exactly 1 at progress 1.

// EasingKind identifies the timing function of an [EasingCurve].
type EasingKind uint8

const (
	EasingLinear EasingKind = iota
	EasingCubicBezier
	EasingEaseInElastic
	EasingEaseOutElastic
	EasingEaseInOutElastic
	EasingEaseInBounce
	EasingEaseOutBounce
	EasingEaseInOutBounce
)

var easingKindNames = [...]string{
	EasingLinear:           "linear",
	EasingCubicBezier:      "cubic-bezier",
	EasingEaseInElastic:    "ease-in-elastic",
	EasingEaseOutElastic:   "ease-out-elastic",
	EasingEaseInOutElastic: "ease-in-out-elastic",
	EasingEaseInBounce:     "ease-in-bounce",
	EasingEaseOutBounce:    "ease-out-bounce",
	EasingEaseInOutBounce:  "ease-in-out-bounce",
}

func (k EasingKind) String() string {
	if int(k) < len(easingKindNames) {
		return easingKindNames[k]
	}
	return fmt.Sprintf("easing(%d)", uint8(k))
}

// EasingCurve is an immutable timing function. The zero value is linear.
type EasingCurve struct {
	Kind EasingKind
	// Control holds x1, y1, x2, y2 for EasingCubicBezier and is ignored otherwise.
	Control [4]float64
}

// Linear returns linear progress (no easing).
var Linear = EasingCurve{Kind: EasingLinear}

// Ease is a general-purpose curve, equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

var (
	EaseInElastic    = EasingCurve{Kind: EasingEaseInElastic}
	EaseOutElastic   = EasingCurve{Kind: EasingEaseOutElastic}
	EaseInOutElastic = EasingCurve{Kind: EasingEaseInOutElastic}
	EaseInBounce     = EasingCurve{Kind: EasingEaseInBounce}
	EaseOutBounce    = EasingCurve{Kind: EasingEaseOutBounce}
	EaseInOutBounce  = EasingCurve{Kind: EasingEaseInOutBounce}
)

// CubicBezier returns a curve defined by the control points (x1,y1) and
// (x2,y2). The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) EasingCurve {
	return EasingCurve{Kind: EasingCubicBezier, Control: [4]float64{x1, y1, x2, y2}}
}

func (c EasingCurve) String() string {
	if c.Kind == EasingCubicBezier {
		return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c.Control[0], c.Control[1], c.Control[2], c.Control[3])
	}
	return c.Kind.String()
}

// Apply evaluates the curve at progress, which is clamped to [0, 1].
func (c EasingCurve) Apply(progress float64) float64 {
	progress = clampUnit(progress)
	switch c.Kind {
	case EasingLinear:
		return progress
	case EasingCubicBezier:
		x1, y1, x2, y2 := c.Control[0], c.Control[1], c.Control[2], c.Control[3]
		if !inUnit(x1) && !inUnit(x2) {
			return progress
		}
		seg := bezierSegment{x1: x1, y1: y1, x2: x2, y2: y2}
		return seg.y(seg.solveTForX(progress, bezierTolerance))
	case EasingEaseInElastic:
		const c4 = 2 * math.Pi / 3
		if progress == 0 || progress == 1 {
			return progress
		}
		return -math.Pow(2, 10*progress-10) * math.Sin((progress*10-10.75)*c4)
	case EasingEaseOutElastic:
		const c4 = 2 * math.Pi / 3
		if progress == 0 || progress == 1 {
			return progress
		}
		return math.Pow(2, -10*progress)*math.Sin((progress*10-0.75)*c4) + 1
	case EasingEaseInOutElastic:
		const c5 = 2 * math.Pi / 4.5
		switch {
		case progress == 0 || progress == 1:
			return progress
		case progress < 0.5:
			return -(math.Pow(2, 20*progress-10) * math.Sin((20*progress-11.125)*c5)) / 2
		default:
			return (math.Pow(2, -20*progress+10)*math.Sin((20*progress-11.125)*c5))/2 + 1
		}
	case EasingEaseInBounce:
		return 1 - easeOutBounce(1-progress)
	case EasingEaseOutBounce:
		return easeOutBounce(progress)
	case EasingEaseInOutBounce:
		if progress < 0.5 {
			return (1 - easeOutBounce(1-2*progress)) / 2
		}
		return (1 + easeOutBounce(2*progress-1)) / 2
	default:
		return progress
	}
}

func easeOutBounce(v float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case v < 1/d1:
		return n1 * v * v
	case v < 2/d1:
		v -= 1.5 / d1
		return n1*v*v + 0.75
	case v < 2.5/d1:
		v -= 2.25 / d1
		return n1*v*v + 0.9375
	default:
		v -= 2.625 / d1
		return n1*v*v + 0.984375
	}
}

const (
	bezierTolerance  = 0.01
	newtonIterations = 8
)

// bezierSegment is a cubic Bézier from (0,0) to (1,1).
type bezierSegment struct {
	x1, y1, x2, y2 float64
}

func (s bezierSegment) x(t float64) float64 {
	return sampleCurve(s.x1, s.x2, t)
}

func (s bezierSegment) y(t float64) float64 {
	return sampleCurve(s.y1, s.y2, t)
}

func (s bezierSegment) dx(t float64) float64 {
	return sampleCurveDerivative(s.x1, s.x2, t)
}

// solveTForX finds the curve parameter whose x coordinate is x. Newton's
// method runs first; a near-zero derivative falls back to bisection, which
// always stays inside [0, 1].
func (s bezierSegment) solveTForX(x, tolerance float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	t := x
	for i := 0; i < newtonIterations; i++ {
		x2 := s.x(t)
		if math.Abs(x2-x) <= tolerance {
			return clampUnit(t)
		}
		d := s.dx(t)
		if d <= 1e-7 {
			break
		}
		t -= (x2 - x) / d
	}

	lo, hi := 0.0, 1.0
	t = 0.5
	for lo < hi {
		x2 := s.x(t)
		if math.Abs(x2-x) < tolerance {
			return t
		}
		if x > x2 {
			lo = t
		} else {
			hi = t
		}
		next := (hi-lo)*0.5 + lo
		if next == t {
			break
		}
		t = next
	}
	return t
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
