// Package strata is a declarative animation layer for 2D sprite scenes on
// [Ebitengine].
//
// Strata takes a flat configuration describing image layers and per-layer
// motion and effect parameters, and computes — frame by frame — the position,
// rotation, scale, alpha, and auxiliary visuals of each sprite. There is no
// physics simulation: every value is a deterministic, phase-based function of
// elapsed time, so a scene always looks the same for the same config and the
// same clock.
//
// # Quick start
//
// Build a [SceneConfig] (by hand or with [LoadSceneFile]), create drawables
// through a [DrawableFactory], and hand both to [NewEngine]:
//
//	cfg, err := strata.LoadSceneFile("scene.yaml")
//	if err != nil { ... }
//
//	stage := strata.NewStage(1024, 1024)
//	engine, err := strata.NewEngine(cfg, stage.Factory(images))
//	if err != nil { ... }
//
// Then pump the engine once per displayed frame and draw the stage:
//
//	func (g *Game) Update() error        { g.engine.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.stage.Draw(s) }
//
// # Processors
//
// Animation is composed from four processors that run in a fixed order each
// frame: Transform (static layout), Spin (rotation about the sprite's own
// center), Orbit (circular motion about a dynamic center with a
// border-projected radius), and Effect (fade/pulse/tilt plus hardware-gated
// aura/distort/shockwave). Each processor mutates the shared per-layer
// [Drawable] state; mutations from one processor are visible to the next in
// the same frame.
//
// Everything runs on a single logical thread. The only injected platform
// dependencies are the per-frame time delta, a normalized pointer position,
// the viewport size, and a hardware-capability predicate — all carried by
// [Env], so the whole core is testable without a display.
//
// [Ebitengine]: https://ebitengine.org
package strata
