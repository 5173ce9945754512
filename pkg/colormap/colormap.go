// Package colormap provides the color scales used to shade pathway
// map reactions by source membership, modeled on the matplotlib
// colormaps conventionally used for this purpose.
package colormap

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omicsdesk/genomaps/pkg/errors"
)

// ErrUnknownColormap is returned when a colormap name is not registered
var ErrUnknownColormap = errors.New("unknown colormap")

// ErrBadLimits is returned for an invalid truncation range
var ErrBadLimits = errors.New("colormap limits must satisfy 0 <= low <= high <= 1")

// Color is an RGB color with channels in [0, 1]
type Color struct {
	R, G, B float64
}

// Hex formats the color as a lowercase #rrggbb hex code
func (c Color) Hex() string {
	clamp := func(v float64) int {
		i := int(math.Round(v * 255))
		if i < 0 {
			return 0
		}
		if i > 255 {
			return 255
		}
		return i
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// Map is a continuous colormap sampled on [0, 1]
type Map interface {
	Name() string
	At(x float64) Color
}

// Segmented interpolates linearly between anchor colors laid out
// evenly on [0, 1]
type Segmented struct {
	name    string
	anchors []Color
}

// NewSegmented builds a segmented colormap from at least two anchors
func NewSegmented(name string, anchors []Color) *Segmented {
	if len(anchors) < 2 {
		panic("segmented colormap needs at least two anchors")
	}
	return &Segmented{name: name, anchors: anchors}
}

// Name of the colormap
func (s *Segmented) Name() string { return s.name }

// At samples the colormap, clamping x to [0, 1]
func (s *Segmented) At(x float64) Color {
	if x <= 0 {
		return s.anchors[0]
	}
	if x >= 1 {
		return s.anchors[len(s.anchors)-1]
	}
	pos := x * float64(len(s.anchors)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := s.anchors[i], s.anchors[i+1]
	return Color{
		R: a.R + (b.R-a.R)*frac,
		G: a.G + (b.G-a.G)*frac,
		B: a.B + (b.B-a.B)*frac,
	}
}

// Listed is a qualitative colormap made of discrete colors
type Listed struct {
	name   string
	colors []Color
}

// NewListed builds a listed colormap
func NewListed(name string, colors []Color) *Listed {
	if len(colors) == 0 {
		panic("listed colormap needs at least one color")
	}
	return &Listed{name: name, colors: colors}
}

// Name of the colormap
func (l *Listed) Name() string { return l.name }

// N is the number of discrete colors
func (l *Listed) N() int { return len(l.colors) }

// Color returns the i-th discrete color, clamped to the valid range
func (l *Listed) Color(i int) Color {
	if i < 0 {
		i = 0
	}
	if i >= len(l.colors) {
		i = len(l.colors) - 1
	}
	return l.colors[i]
}

// At samples the listed colormap by binning [0, 1] into N segments
func (l *Listed) At(x float64) Color {
	return l.Color(int(x * float64(len(l.colors))))
}

// reversed wraps a map, sampling it backwards
type reversed struct {
	inner Map
}

func (r reversed) Name() string        { return r.inner.Name() + "_r" }
func (r reversed) At(x float64) Color { return r.inner.At(1 - x) }

// Reverse returns the colormap sampled backwards
func Reverse(m Map) Map {
	if r, ok := m.(reversed); ok {
		return r.inner
	}
	return reversed{inner: m}
}

// Get resolves a colormap by name. Names ending in "_r" resolve to
// the reversed base colormap.
func Get(name string) (Map, error) {
	if m, ok := builtins[name]; ok {
		return m, nil
	}
	if base, ok := builtins[strings.TrimSuffix(name, "_r")]; ok && strings.HasSuffix(name, "_r") {
		return Reverse(base), nil
	}
	return nil, ErrUnknownColormap.WrapMessage(nil, "%q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered colormap names
func Names() []string {
	names := make([]string, 0, 2*len(builtins))
	for name := range builtins {
		names = append(names, name, name+"_r")
	}
	sort.Strings(names)
	return names
}

// Truncate restricts sampling of a colormap to the [low, high]
// fraction of its range. Truncating to (0, 1) returns the map
// unchanged. Listed colormaps are truncated by subsetting their
// discrete colors.
func Truncate(m Map, low, high float64) (Map, error) {
	if low < 0 || high > 1 || low > high {
		return nil, ErrBadLimits.WrapMessage(nil, "got (%g, %g)", low, high)
	}
	if low == 0 && high == 1 {
		return m, nil
	}
	if l, ok := m.(*Listed); ok {
		lo := int(low * float64(l.N()))
		hi := int(math.Ceil(high * float64(l.N())))
		if hi <= lo {
			hi = lo + 1
		}
		return NewListed(
			fmt.Sprintf("trunc(%s,%.2f,%.2f)", l.Name(), low, high),
			l.colors[lo:hi],
		), nil
	}
	return &truncated{
		name:  fmt.Sprintf("trunc(%s,%.2f,%.2f)", m.Name(), low, high),
		inner: m,
		low:   low,
		high:  high,
	}, nil
}

type truncated struct {
	name      string
	inner     Map
	low, high float64
}

func (t *truncated) Name() string { return t.name }

func (t *truncated) At(x float64) Color {
	return t.inner.At(t.low + x*(t.high-t.low))
}

// Linspace returns n evenly spaced samples on [0, 1] inclusive
func Linspace(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	points := make([]float64, n)
	for i := range points {
		points[i] = float64(i) / float64(n-1)
	}
	return points
}
