package strata

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// spriteIDCounter is a plain counter (no atomic — strata is single-threaded).
var spriteIDCounter uint32

func nextSpriteID() uint32 {
	spriteIDCounter++
	return spriteIDCounter
}

// Stage owns the ebiten-backed sprites of one scene and draws them in
// z order. It is the reference [Drawable] provider; the animation core only
// ever sees the Drawable interface, so hosts with their own renderer can
// ignore Stage entirely.
type Stage struct {
	sprites    []*Sprite
	sortBuf    []*Sprite
	width      float64
	height     float64
	orderDirty bool
}

// NewStage creates an empty stage with the given pixel dimensions.
func NewStage(width, height float64) *Stage {
	return &Stage{width: width, height: height}
}

// Size returns the stage dimensions in pixels.
func (st *Stage) Size() (w, h float64) {
	return st.width, st.height
}

// Resize updates the stage dimensions. Layer layout is not touched here;
// the Engine re-runs its processors against the new size.
func (st *Stage) Resize(width, height float64) {
	st.width = width
	st.height = height
}

// NewSprite creates a sprite on this stage. img may be nil for a placeholder
// sprite that occupies a layer slot without rendering.
func (st *Stage) NewSprite(name string, img *ebiten.Image) *Sprite {
	s := &Sprite{
		ID:    nextSpriteID(),
		Name:  name,
		img:   img,
		stage: st,
		scale: 1,
		alpha: 1,
		tint:  ColorWhite,
	}
	st.sprites = append(st.sprites, s)
	st.orderDirty = true
	return s
}

// Factory returns a DrawableFactory that creates one sprite per layer,
// resolving the layer's image reference against the given image table.
// A missing image is a build error: the scene cannot honor the config.
func (st *Stage) Factory(images map[string]*ebiten.Image) DrawableFactory {
	return func(layer LayerConfig) (Drawable, error) {
		img, ok := images[layer.Image]
		if !ok {
			return nil, fmt.Errorf("stage: no image for layer %q (ref %q)", layer.ID, layer.Image)
		}
		return st.NewSprite(layer.ID, img), nil
	}
}

// Sprites returns the stage's sprite list in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (st *Stage) Sprites() []*Sprite {
	return st.sprites
}

// remove detaches a sprite from the stage without clearing its fields.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (st *Stage) remove(s *Sprite) {
	for i, existing := range st.sprites {
		if existing == s {
			copy(st.sprites[i:], st.sprites[i+1:])
			st.sprites[len(st.sprites)-1] = nil
			st.sprites = st.sprites[:len(st.sprites)-1]
			st.orderDirty = true
			return
		}
	}
}

// insertBefore places newcomer immediately before anchor in insertion order,
// so a stable z sort keeps it directly behind the anchor.
func (st *Stage) insertBefore(anchor, newcomer *Sprite) {
	st.remove(newcomer)
	for i, existing := range st.sprites {
		if existing == anchor {
			st.sprites = append(st.sprites, nil)
			copy(st.sprites[i+1:], st.sprites[i:])
			st.sprites[i] = newcomer
			st.orderDirty = true
			return
		}
	}
	st.sprites = append(st.sprites, newcomer)
	st.orderDirty = true
}

// Sprite is the ebiten-backed Drawable. All transform fields are in stage
// pixels and radians; Scale is uniform.
type Sprite struct {
	ID   uint32
	Name string

	img   *ebiten.Image
	stage *Stage

	x, y     float64
	scale    float64
	rotation float64
	alpha    float64
	tint     Color
	zIndex   int

	disposed bool
}

// Image returns the sprite's source image, or nil.
func (s *Sprite) Image() *ebiten.Image { return s.img }

// Position returns the sprite's center position in stage pixels.
func (s *Sprite) Position() (x, y float64) { return s.x, s.y }

// SetPosition sets the sprite's center position in stage pixels.
func (s *Sprite) SetPosition(x, y float64) {
	s.x = x
	s.y = y
}

// Scale returns the sprite's uniform scale multiplier.
func (s *Sprite) Scale() float64 { return s.scale }

// SetScale sets the sprite's uniform scale multiplier.
func (s *Sprite) SetScale(scale float64) {
	s.scale = scale
}

// Rotation returns the sprite's rotation in radians.
func (s *Sprite) Rotation() float64 { return s.rotation }

// SetRotation sets the sprite's rotation in radians.
func (s *Sprite) SetRotation(r float64) {
	s.rotation = r
}

// Alpha returns the sprite's opacity in [0, 1].
func (s *Sprite) Alpha() float64 { return s.alpha }

// SetAlpha sets the sprite's opacity. Callers clamp; the sprite stores what
// it is given.
func (s *Sprite) SetAlpha(a float64) {
	s.alpha = a
}

// SetTint sets the sprite's color tint.
func (s *Sprite) SetTint(c Color) {
	s.tint = c
}

// SetZIndex sets the sprite's z order and marks the stage for re-sorting.
func (s *Sprite) SetZIndex(z int) {
	if s.zIndex == z {
		return
	}
	s.zIndex = z
	if s.stage != nil {
		s.stage.orderDirty = true
	}
}

// ZIndex returns the sprite's z order.
func (s *Sprite) ZIndex() int { return s.zIndex }

// SpawnAura creates a sprite sharing this sprite's image and current
// transform, inserted directly behind it in draw order. The caller owns the
// aura and must Dispose it.
func (s *Sprite) SpawnAura() Drawable {
	aura := &Sprite{
		ID:       nextSpriteID(),
		Name:     s.Name + "/aura",
		img:      s.img,
		stage:    s.stage,
		x:        s.x,
		y:        s.y,
		scale:    s.scale,
		rotation: s.rotation,
		alpha:    s.alpha,
		tint:     s.tint,
		zIndex:   s.zIndex,
	}
	if s.stage != nil {
		s.stage.insertBefore(s, aura)
	}
	return aura
}

// Dispose removes the sprite from its stage. Idempotent.
func (s *Sprite) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.stage != nil {
		s.stage.remove(s)
		s.stage = nil
	}
	s.img = nil
}

// IsDisposed returns true if the sprite has been disposed.
func (s *Sprite) IsDisposed() bool { return s.disposed }
