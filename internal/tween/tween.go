// Package tween holds the named easing functions used by the animation pump.
//
// Every function has the classic signature f(t, b, c, d[, extra...]) where t is
// the elapsed time, b the start value, c the change in value and d the
// duration. A zero (or negative) duration yields b+c without dividing.
package tween

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Func interpolates from b to b+c over d.
type Func func(t, b, c, d float64, extra ...float64) float64

// ErrUnknownEasing is returned by Lookup for unregistered names.
var ErrUnknownEasing = errors.New("unknown easing")

// Default is the easing used when none is named.
const Default = "linear"

var registry = map[string]Func{
	"linear":           guard(linear),
	"easeInQuad":       guard(easeInQuad),
	"easeOutQuad":      guard(easeOutQuad),
	"easeInOutQuad":    guard(easeInOutQuad),
	"easeInCubic":      guard(easeInCubic),
	"easeOutCubic":     guard(easeOutCubic),
	"easeInOutCubic":   guard(easeInOutCubic),
	"easeInBack":       guard(easeInBack),
	"easeOutBack":      guard(easeOutBack),
	"easeInOutBack":    guard(easeInOutBack),
	"easeInElastic":    guard(easeInElastic),
	"easeOutElastic":   guard(easeOutElastic),
	"easeInOutElastic": guard(easeInOutElastic),
	"easeInBounce":     guard(easeInBounce),
	"easeOutBounce":    guard(easeOutBounce),
	"easeInOutBounce":  guard(easeInOutBounce),
}

// guard short-circuits a zero duration to the end value.
func guard(f Func) Func {
	return func(t, b, c, d float64, extra ...float64) float64 {
		if d <= 0 {
			return b + c
		}
		return f(t, b, c, d, extra...)
	}
}

// Lookup returns the easing registered under name. An empty name selects Default.
func Lookup(name string) (Func, error) {
	if name == "" {
		name = Default
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return f, nil
}

// Names returns every registered easing name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func arg(extra []float64, i int, def float64) float64 {
	if i < len(extra) && extra[i] != 0 {
		return extra[i]
	}
	return def
}

func linear(t, b, c, d float64, _ ...float64) float64 {
	return c*t/d + b
}

func easeInQuad(t, b, c, d float64, _ ...float64) float64 {
	t /= d
	return c*t*t + b
}

func easeOutQuad(t, b, c, d float64, _ ...float64) float64 {
	t /= d
	return -c*t*(t-2) + b
}

func easeInOutQuad(t, b, c, d float64, _ ...float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}

func easeInCubic(t, b, c, d float64, _ ...float64) float64 {
	t /= d
	return c*t*t*t + b
}

func easeOutCubic(t, b, c, d float64, _ ...float64) float64 {
	t = t/d - 1
	return c*(t*t*t+1) + b
}

func easeInOutCubic(t, b, c, d float64, _ ...float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t*t + b
	}
	t -= 2
	return c/2*(t*t*t+2) + b
}

// overshoot for the back family; extra[0] overrides it.
const overshoot = 1.70158

func easeInBack(t, b, c, d float64, extra ...float64) float64 {
	s := arg(extra, 0, overshoot)
	t /= d
	return c*t*t*((s+1)*t-s) + b
}

func easeOutBack(t, b, c, d float64, extra ...float64) float64 {
	s := arg(extra, 0, overshoot)
	t = t/d - 1
	return c*(t*t*((s+1)*t+s)+1) + b
}

func easeInOutBack(t, b, c, d float64, extra ...float64) float64 {
	s := arg(extra, 0, overshoot) * 1.525
	t /= d / 2
	if t < 1 {
		return c/2*(t*t*((s+1)*t-s)) + b
	}
	t -= 2
	return c/2*(t*t*((s+1)*t+s)+2) + b
}

// elastic returns amplitude and phase shift; extra[0] is amplitude, extra[1] period.
func elastic(c, p float64, extra []float64) (a, s float64) {
	a = arg(extra, 0, 0)
	if a == 0 || a < math.Abs(c) {
		return c, p / 4
	}
	return a, p / (2 * math.Pi) * math.Asin(c/a)
}

func easeInElastic(t, b, c, d float64, extra ...float64) float64 {
	if t == 0 {
		return b
	}
	t /= d
	if t >= 1 {
		return b + c
	}
	p := arg(extra, 1, d*0.3)
	a, s := elastic(c, p, extra)
	t--
	return -(a * math.Pow(2, 10*t) * math.Sin((t*d-s)*(2*math.Pi)/p)) + b
}

func easeOutElastic(t, b, c, d float64, extra ...float64) float64 {
	if t == 0 {
		return b
	}
	t /= d
	if t >= 1 {
		return b + c
	}
	p := arg(extra, 1, d*0.3)
	a, s := elastic(c, p, extra)
	return a*math.Pow(2, -10*t)*math.Sin((t*d-s)*(2*math.Pi)/p) + c + b
}

func easeInOutElastic(t, b, c, d float64, extra ...float64) float64 {
	if t == 0 {
		return b
	}
	t /= d / 2
	if t >= 2 {
		return b + c
	}
	p := arg(extra, 1, d*(0.3*1.5))
	a, s := elastic(c, p, extra)
	t--
	if t < 0 {
		return -0.5*(a*math.Pow(2, 10*t)*math.Sin((t*d-s)*(2*math.Pi)/p)) + b
	}
	return a*math.Pow(2, -10*t)*math.Sin((t*d-s)*(2*math.Pi)/p)*0.5 + c + b
}

func easeOutBounce(t, b, c, d float64, _ ...float64) float64 {
	t /= d
	switch {
	case t < 1/2.75:
		return c*(7.5625*t*t) + b
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return c*(7.5625*t*t+0.75) + b
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return c*(7.5625*t*t+0.9375) + b
	default:
		t -= 2.625 / 2.75
		return c*(7.5625*t*t+0.984375) + b
	}
}

func easeInBounce(t, b, c, d float64, _ ...float64) float64 {
	return c - easeOutBounce(d-t, 0, c, d) + b
}

func easeInOutBounce(t, b, c, d float64, _ ...float64) float64 {
	if t < d/2 {
		return easeInBounce(t*2, 0, c, d)*0.5 + b
	}
	return easeOutBounce(t*2-d, 0, c, d)*0.5 + c*0.5 + b
}
