package strata

// DefaultStageWidth and DefaultStageHeight are the logical stage dimensions
// used when a scene config does not specify its own. Percentage-based layer
// positions are resolved against the current stage size, so the defaults only
// matter until the first resize.
const (
	DefaultStageWidth  = 1024.0
	DefaultStageHeight = 1024.0
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the
// API. In configuration context the components are percentages of the stage.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Direction is the sign of an angular motion: +1 for clockwise (the
// screen-space positive rotation direction), -1 for counter-clockwise.
type Direction float64

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// OrientPolicy controls whether an orbiting sprite's rotation tracks its
// direction of travel.
type OrientPolicy uint8

const (
	// OrientNone leaves rotation untouched by the orbit processor.
	OrientNone OrientPolicy = iota
	// OrientAuto faces the direction of travel, but defers to an existing
	// spin animation: when the layer's spin RPM (snapshotted at orbit item
	// creation) is positive, the orbit never writes rotation.
	OrientAuto
	// OrientOverride always faces the direction of travel, regardless of spin.
	OrientOverride
)

// Drawable is the per-layer handle every processor mutates. Implementations
// wrap whatever the host renders with; [Stage] provides an ebiten-backed one,
// and tests use an in-memory fake.
//
// The accumulation semantics of the effect pipeline require read access:
// tilt applies an incremental rotation delta on top of whatever spin/orbit
// wrote this frame, and distort perturbs the position other processors set
// this frame. Processors therefore read the current value, then write.
type Drawable interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Scale() float64
	SetScale(s float64)
	Rotation() float64
	SetRotation(r float64)
	Alpha() float64
	SetAlpha(a float64)
	SetTint(c Color)
	SetZIndex(z int)

	// SpawnAura creates an auxiliary drawable sharing this drawable's visual
	// asset, inserted directly behind it in draw order. The caller owns the
	// returned drawable and must Dispose it.
	SpawnAura() Drawable

	// Dispose releases the drawable. Further calls on a disposed drawable
	// are no-ops.
	Dispose()
}

// BuiltLayer pairs a layer's immutable configuration with its live drawable.
// Created once per scene build, owned by the Engine, read by every processor.
type BuiltLayer struct {
	ID       string
	Config   LayerConfig
	Drawable Drawable
}

// Processor is one stage of the per-frame animation pipeline. Processors are
// registered with the Engine in a fixed order and driven cooperatively: Init
// once after the layers are built, Tick every frame, Resize whenever the
// stage dimensions change, Dispose exactly once at teardown.
type Processor interface {
	// Init builds the processor's working items from the layer set.
	// Any previously built items are discarded, not merged.
	Init(layers []BuiltLayer)

	// Tick advances the processor by dt seconds and writes to the layers'
	// drawables. A processor with no items must treat Tick as a no-op.
	Tick(dt float64)

	// Resize informs the processor of new stage dimensions in pixels.
	Resize(width, height float64)

	// Animating reports whether the processor currently has content that
	// needs per-frame ticks. The Engine only runs the clock while at least
	// one processor is animating.
	Animating() bool

	// Dispose releases all working items and any owned drawables.
	Dispose()
}
