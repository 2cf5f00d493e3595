package strata

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders every sprite to the target image in z order. Sprites with the
// same z index keep their insertion order (a stable sort), which is what
// keeps aura sprites directly behind their owners.
func (st *Stage) Draw(target *ebiten.Image) {
	if st.orderDirty {
		st.sortBuf = st.sortBuf[:0]
		st.sortBuf = append(st.sortBuf, st.sprites...)
		sort.SliceStable(st.sortBuf, func(i, j int) bool {
			return st.sortBuf[i].zIndex < st.sortBuf[j].zIndex
		})
		st.orderDirty = false
	}

	for _, s := range st.sortBuf {
		if s.disposed || s.img == nil || s.alpha <= 0 {
			continue
		}
		s.draw(target)
	}
}

// draw submits one sprite. The pivot is the image center, matching the
// transform model of the animation core (positions are sprite centers).
func (s *Sprite) draw(target *ebiten.Image) {
	bounds := s.img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	var opts ebiten.DrawImageOptions
	opts.GeoM.Translate(-w/2, -h/2)
	opts.GeoM.Scale(s.scale, s.scale)
	opts.GeoM.Rotate(s.rotation)
	opts.GeoM.Translate(s.x, s.y)

	opts.ColorScale.Scale(float32(s.tint.R), float32(s.tint.G), float32(s.tint.B), 1)
	opts.ColorScale.ScaleAlpha(float32(Clamp01(s.alpha)))
	opts.Filter = ebiten.FilterLinear

	target.DrawImage(s.img, &opts)
}
