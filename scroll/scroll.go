// Package scroll implements the scrollback/input scroll engine: a wheel
// event coalescer that handles both discrete-tick and continuous pixel-mode
// mice, inertial "flick" physics once the wheel stops, and a virtualized
// viewport over arbitrarily long scrollback with overscan so rendering
// never has to process more rows than are actually close to visible.
package scroll

import "math"

// Mode distinguishes discrete (one wheel click = one line) mice from
// pixel-precision trackpads/mice that report sub-line deltas.
type Mode uint8

const (
	ModeDiscrete Mode = iota
	ModePixel
)

// Config tunes coalescing and inertia behavior.
type Config struct {
	Mode Mode

	// LinesPerTick is how many lines one discrete wheel tick scrolls.
	LinesPerTick int
	// PixelsPerLine converts pixel-mode deltas to lines.
	PixelsPerLine int

	// Friction is the per-tick velocity decay factor during inertial
	// scrolling, in (0, 1). Lower values stop faster.
	Friction float64
	// MinVelocity is the speed (lines per tick) below which inertial
	// scrolling stops rather than asymptotically crawling forever.
	MinVelocity float64
	// MaxVelocity clamps the velocity a single coalesced burst can impart,
	// so a pathological input burst can't produce an unbounded flick.
	MaxVelocity float64
}

// DefaultConfig matches typical terminal-emulator wheel behavior.
var DefaultConfig = Config{
	Mode:          ModeDiscrete,
	LinesPerTick:  3,
	PixelsPerLine: 40,
	Friction:      0.93,
	MinVelocity:   0.05,
	MaxVelocity:   40,
}

// WheelCoalescer accumulates a burst of wheel events (which terminals and
// GUI toolkits alike can deliver in many small messages per physical
// detent) into a single integer line delta per tick, using saturating
// arithmetic so a flood of events can never wrap an accumulator around.
type WheelCoalescer struct {
	cfg Config

	pixelAccum int32 // sub-line pixel remainder, pixel mode only
	lineAccum  int32 // pending whole lines not yet drained by Drain
}

// NewWheelCoalescer creates a coalescer using cfg.
func NewWheelCoalescer(cfg Config) *WheelCoalescer {
	return &WheelCoalescer{cfg: cfg}
}

const (
	maxAccum = math.MaxInt32 - 1<<20
	minAccum = math.MinInt32 + 1<<20
)

func saturatingAdd32(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > maxAccum {
		return maxAccum
	}
	if sum < minAccum {
		return minAccum
	}
	return int32(sum)
}

// Feed records one wheel event. delta is in wheel "ticks" for discrete mode
// (typically ±1, ±2 for fast scrolling) or raw pixels for pixel mode.
func (w *WheelCoalescer) Feed(delta int32) {
	switch w.cfg.Mode {
	case ModePixel:
		w.pixelAccum = saturatingAdd32(w.pixelAccum, delta)
		perLine := int32(w.cfg.PixelsPerLine)
		if perLine <= 0 {
			perLine = 1
		}
		lines := w.pixelAccum / perLine
		w.pixelAccum -= lines * perLine
		w.lineAccum = saturatingAdd32(w.lineAccum, lines)
	default:
		perTick := int32(w.cfg.LinesPerTick)
		if perTick <= 0 {
			perTick = 1
		}
		w.lineAccum = saturatingAdd32(w.lineAccum, delta*perTick)
	}
}

// Drain returns and clears the accumulated whole-line delta since the last
// Drain. Call this once per render tick.
func (w *WheelCoalescer) Drain() int {
	lines := w.lineAccum
	w.lineAccum = 0
	return int(lines)
}

// ScrollState tracks a scrollable region's position, content extent, and
// any in-flight inertial motion.
type ScrollState struct {
	cfg Config

	offset      float64 // current scroll position, fractional for smooth inertia
	contentLen  int
	viewportLen int

	velocity float64 // lines per tick, nonzero while inertial scrolling is active
}

// NewScrollState creates a ScrollState using cfg.
func NewScrollState(cfg Config) *ScrollState {
	return &ScrollState{cfg: cfg}
}

// SetExtent updates the total content length and visible viewport length
// (both in lines), clamping the current offset into the valid range.
func (s *ScrollState) SetExtent(contentLen, viewportLen int) {
	s.contentLen = contentLen
	s.viewportLen = viewportLen
	s.clamp()
}

func (s *ScrollState) maxOffset() float64 {
	m := s.contentLen - s.viewportLen
	if m < 0 {
		m = 0
	}
	return float64(m)
}

func (s *ScrollState) clamp() {
	if s.offset < 0 {
		s.offset = 0
		s.velocity = 0
	}
	if max := s.maxOffset(); s.offset > max {
		s.offset = max
		s.velocity = 0
	}
}

// ApplyWheel applies a coalesced line delta immediately (discrete jump) and
// seeds inertial velocity so the motion continues settling over subsequent
// Tick calls, the way a trackpad flick keeps scrolling after the fingers
// lift.
func (s *ScrollState) ApplyWheel(lines int) {
	if lines == 0 {
		return
	}
	s.offset += float64(lines)
	s.clamp()

	v := float64(lines)
	if v > s.cfg.MaxVelocity {
		v = s.cfg.MaxVelocity
	}
	if v < -s.cfg.MaxVelocity {
		v = -s.cfg.MaxVelocity
	}
	s.velocity = v
}

// Tick advances one inertial physics step, decaying velocity by Friction
// and applying it to offset, stopping once velocity drops below
// MinVelocity. Returns whether motion is still ongoing (so callers know
// whether to keep scheduling ticks).
func (s *ScrollState) Tick() bool {
	if s.velocity == 0 {
		return false
	}
	s.offset += s.velocity
	s.velocity *= s.cfg.Friction
	if math.Abs(s.velocity) < s.cfg.MinVelocity {
		s.velocity = 0
	}
	before := s.offset
	s.clamp()
	if s.offset != before {
		// hit a bound: kill residual velocity so we don't keep nudging
		s.velocity = 0
	}
	return s.velocity != 0
}

// JumpTo sets the scroll offset directly (e.g. "G" to go to bottom,
// search-result navigation), cancelling any inertial motion.
func (s *ScrollState) JumpTo(line int) {
	s.offset = float64(line)
	s.velocity = 0
	s.clamp()
}

// Offset returns the current integer scroll offset (top visible line).
func (s *ScrollState) Offset() int {
	return int(math.Round(s.offset))
}

// AtTop / AtBottom report whether the viewport is pinned to an edge.
func (s *ScrollState) AtTop() bool    { return s.Offset() <= 0 }
func (s *ScrollState) AtBottom() bool { return float64(s.Offset()) >= s.maxOffset() }

// ViewportSnapshot is a deterministic description of which content rows a
// renderer should draw this frame, including an overscan margin of rows
// just outside the visible area kept warm so a fast scroll doesn't have to
// render from a cold cache on the very next frame.
type ViewportSnapshot struct {
	Top, Bottom       int // visible row range [Top, Bottom)
	OverscanTop       int // rows above Top kept rendered
	OverscanBottom    int // rows below Bottom kept rendered
	TotalLines        int
}

// Viewport computes a ViewportSnapshot for the current scroll position,
// padding overscan lines above and below the visible range (clamped to
// valid content bounds).
func (s *ScrollState) Viewport(overscan int) ViewportSnapshot {
	top := s.Offset()
	bottom := top + s.viewportLen
	if bottom > s.contentLen {
		bottom = s.contentLen
	}
	ot := top - overscan
	if ot < 0 {
		ot = 0
	}
	ob := bottom + overscan
	if ob > s.contentLen {
		ob = s.contentLen
	}
	return ViewportSnapshot{
		Top: top, Bottom: bottom,
		OverscanTop: ot, OverscanBottom: ob,
		TotalLines: s.contentLen,
	}
}
