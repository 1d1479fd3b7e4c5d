package main

import (
	"math"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/config"
	"despawn-particles/internal/debug"
	"despawn-particles/internal/despawn"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/phys"
	"despawn-particles/internal/render"
	"despawn-particles/internal/scene"
	"despawn-particles/internal/utils"
)

type DemoOptions struct {
	Texture string
	Mesh    string
	X11     bool
}

type Demo struct {
	cfg    *config.Config
	opts   DemoOptions
	world  *scene.World
	assets *assets.Server
	plugin *despawn.Plugin

	renderer *render.Renderer
	overlay  *debug.Overlay
	pointer  *utils.Pointer

	texture  assets.Handle[*assets.Image]
	override assets.Handle[*mesh.Mesh]
	targets  map[scene.Entity]float32

	presets       []string
	presetIndex   int
	lastFrameTime time.Time
}

func NewDemo(cfg *config.Config, opts DemoOptions) (*Demo, error) {
	world := scene.NewWorld()
	as := assets.NewServer()

	plugin, err := despawn.New(cfg, world, as)
	if err != nil {
		return nil, err
	}

	d := &Demo{
		cfg:           cfg,
		opts:          opts,
		world:         world,
		assets:        as,
		plugin:        plugin,
		renderer:      render.NewRenderer(as, rl.GetScreenWidth(), rl.GetScreenHeight()),
		overlay:       debug.NewOverlay(),
		targets:       make(map[scene.Entity]float32),
		presets:       presetNames(cfg),
		lastFrameTime: time.Now(),
	}

	if opts.X11 {
		if d.pointer, err = utils.NewPointer(); err != nil {
			utils.Warn("X11 pointer unavailable, using window input: %v", err)
			d.pointer = nil
		}
	}

	d.texture, _ = loadTexture(as, opts.Texture)
	d.override, _ = loadMesh(as, opts.Mesh)
	d.populate()
	return d, nil
}

func presetNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// populate lays out one row of each drawable kind.
func (d *Demo) populate() {
	for _, dr := range d.world.Drawables() {
		d.world.Despawn(dr.Entity)
	}
	d.targets = make(map[scene.Entity]float32)

	img, _ := d.assets.Images.Get(d.texture)
	spriteSize := mgl32.Vec2{96, 96 * img.Size().Y() / img.Size().X()}

	for i := 0; i < 5; i++ {
		x := float32(i-2) * 180
		e := d.world.Spawn(
			scene.WithTransform(geom.FromXY(x, 180)),
			scene.WithSprite(scene.SpriteData{Image: d.texture, CustomSize: &spriteSize}),
		)
		d.targets[e] = spriteSize.Len() / 2
	}

	atlas := d.assets.Atlases.Add(assets.NewGridAtlas(d.texture, img.Size(), 2, 2))
	cell := mgl32.Vec2{64, 64}
	for i := 0; i < 4; i++ {
		x := float32(i)*160 - 240
		e := d.world.Spawn(
			scene.WithTransform(geom.FromXY(x, 20)),
			scene.WithAtlasSprite(scene.AtlasSpriteData{Atlas: atlas, Index: i, CustomSize: &cell}),
			scene.WithVelocity(phys.Velocity{Linear: mgl32.Vec2{0, 120}, Angular: float32(i) - 1.5}),
		)
		d.targets[e] = cell.Len() / 2
	}

	satellite := d.assets.Meshes.Add(mesh.NewTriangle(
		mgl32.Vec3{-10, -10, 0}, mgl32.Vec3{10, -10, 0}, mgl32.Vec3{0, 10, 0},
		[3]mgl32.Vec2{{0, 1}, {1, 1}, {0.5, 0}},
	))
	colors := []material.Color{
		{R: 0.9, G: 0.3, B: 0.3, A: 1},
		{R: 0.3, G: 0.9, B: 0.4, A: 1},
		{R: 0.9, G: 0.8, B: 0.2, A: 0.8},
	}
	for i, c := range colors {
		x := float32(i-1) * 220
		poly := d.assets.Meshes.Add(mesh.NewRegularPolygon(40, 5+i))
		mat := d.assets.Materials.Add(c)
		opts := []scene.Option{
			scene.WithTransform(geom.FromXY(x, -160)),
			scene.WithMesh2D(scene.Mesh2DData{Mesh: poly, Material: mat}),
		}
		if d.override.Valid() && i == 0 {
			opts = append(opts, scene.WithMeshOverride(scene.DespawnMeshOverrideData{Mesh: d.override}))
		}
		parent := d.world.Spawn(opts...)
		d.targets[parent] = 40

		// a small satellite that only fragments with a recursive preset
		child := d.world.Spawn(
			scene.WithTransform(geom.FromXY(60, 0)),
			scene.WithMesh2D(scene.Mesh2DData{Mesh: satellite, Material: mat}),
		)
		d.world.AddChild(parent, child)
	}

	utils.Debug("Demo populated: %d entities", d.world.Len())
}

func (d *Demo) Run() {
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		d.Update()

		rl.BeginDrawing()
		d.Draw()
		rl.EndDrawing()
	}
}

func (d *Demo) cursor() mgl32.Vec2 {
	if d.pointer != nil {
		if x, y, err := d.pointer.Position(); err == nil {
			win := rl.GetWindowPosition()
			return d.renderer.Viewport.ToWorld(float32(x)-win.X, float32(y)-win.Y)
		}
	}
	pos := rl.GetMousePosition()
	return d.renderer.Viewport.ToWorld(pos.X, pos.Y)
}

// pick returns the closest live target under p.
func pick(w *scene.World, targets map[scene.Entity]float32, p mgl32.Vec2) (scene.Entity, bool) {
	best, found := scene.Null, false
	bestDist := float32(math.MaxFloat32)
	for e, radius := range targets {
		t, ok := w.GlobalTransform(e)
		if !ok {
			continue
		}
		dist := mgl32.Vec2{t.Translation.X(), t.Translation.Y()}.Sub(p).Len()
		if dist <= radius && dist < bestDist {
			best, bestDist, found = e, dist, true
		}
	}
	return best, found
}

func (d *Demo) event(e scene.Entity) despawn.Event {
	if len(d.presets) > 0 {
		preset, _ := d.plugin.Preset(d.presets[d.presetIndex])
		return preset.CreateEvent(e)
	}
	return despawn.NewBuilder().
		WithLinearVelocity(despawn.Range(60, 160)).
		WithAngularVelocity(despawn.Choice(-5, -2.5, 2.5, 5)).
		WithLifetime(despawn.Range(0.8, 1.6)).
		WithMass(despawn.Fixed(1)).
		WithFade(true).
		WithShrink(true).
		Build(e)
}

func (d *Demo) Update() {
	now := time.Now()
	dt := now.Sub(d.lastFrameTime).Seconds()
	d.lastFrameTime = now

	d.renderer.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight())

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if rl.IsKeyPressed(rl.KeyTab) && len(d.presets) > 0 {
		d.presetIndex = (d.presetIndex + 1) % len(d.presets)
		utils.Info("Preset: %s", d.presets[d.presetIndex])
	}
	if rl.IsKeyPressed(rl.KeyR) {
		d.populate()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		overlayHit := utils.ShowDebugUI && d.overlay.HandleClick(d.plugin, m.X, m.Y)
		if e, ok := pick(d.world, d.targets, d.cursor()); ok && !overlayHit {
			d.plugin.Send(d.event(e))
			delete(d.targets, e)
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		for e := range d.targets {
			d.plugin.Send(d.event(e))
		}
		d.targets = make(map[scene.Entity]float32)
	}

	d.moveEntities(float32(dt))
	d.plugin.Update(dt)
}

// moveEntities drifts entities that carry a velocity, so fragments inherit
// motion.
func (d *Demo) moveEntities(dt float32) {
	for e := range d.targets {
		v, ok := d.world.Velocity(e)
		if !ok {
			continue
		}
		t, _ := d.world.LocalTransform(e)
		t.Translation = t.Translation.Add(mgl32.Vec3{v.Linear.X() * dt, v.Linear.Y() * dt, 0})
		t.RotateZ(v.Angular * dt)
		if math.Abs(float64(t.Translation.Y())) > 200 {
			v.Linear = mgl32.Vec2{v.Linear.X(), -v.Linear.Y()}
			d.world.SetVelocity(e, v)
		}
		d.world.SetTransform(e, t)
	}
}

func (d *Demo) Draw() {
	d.renderer.Begin()
	d.renderer.DrawScene(d.world)
	d.renderer.DrawParticles(d.plugin.Particles())

	rl.DrawText("click: despawn   space: all   R: reset   tab: preset   F8: debug", 10, int32(rl.GetScreenHeight()-24), 16, rl.LightGray)
	if len(d.presets) > 0 {
		rl.DrawText("preset: "+d.presets[d.presetIndex], 10, int32(rl.GetScreenHeight()-44), 16, rl.LightGray)
	}
	if utils.ShowDebugUI {
		d.overlay.Draw(d.plugin, d.renderer.Viewport)
	}
}

func (d *Demo) Close() {
	d.renderer.Unload()
	if d.pointer != nil {
		d.pointer.Close()
	}
}
