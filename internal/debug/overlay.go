// Package debug draws an on-screen overlay with particle and frame stats.
package debug

import (
	"fmt"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"despawn-particles/internal/despawn"
	"despawn-particles/internal/particle"
	"despawn-particles/internal/phys"
	"despawn-particles/internal/render"
)

// Source is the part of the despawn plugin the overlay reads.
type Source interface {
	Stats() despawn.Stats
	MaxParticles() int
	Provider() phys.Provider
	Particles() *particle.Store
}

const (
	fontHeight = 16
	lineHeight = 20
	panelWidth = 280
	indent     = 10
)

// row is one line of the panel. Headers are flush left and tinted.
type row struct {
	text   string
	header bool
}

// Frame is the timing sample shown at the top of the panel.
type Frame struct {
	FPS       int32
	FrameTime float32
}

type Overlay struct {
	ShowBoundingBoxes bool

	lastSample time.Time
	memStats   runtime.MemStats
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Lines formats plugin stats for display.
func Lines(stats despawn.Stats, maxParticles int, provider string) []string {
	usage := 0.0
	if maxParticles > 0 {
		usage = float64(stats.Live) / float64(maxParticles) * 100
	}
	return []string{
		fmt.Sprintf("Particles: %d / %d (%.0f%%)", stats.Live, maxParticles, usage),
		fmt.Sprintf("Spawned: %d", stats.Spawned),
		fmt.Sprintf("Expired: %d", stats.Expired),
		fmt.Sprintf("Evicted: %d", stats.Evicted),
		fmt.Sprintf("Failed: %d", stats.Failed),
		fmt.Sprintf("Physics: %s", provider),
	}
}

func (o *Overlay) rows(src Source, frame Frame) []row {
	rows := []row{
		{text: "Timing:", header: true},
		{text: fmt.Sprintf("FPS: %d", frame.FPS)},
		{text: fmt.Sprintf("Frame Time: %.2f ms", frame.FrameTime*1000)},
		{text: "Despawn:", header: true},
	}
	for _, line := range Lines(src.Stats(), src.MaxParticles(), src.Provider().Name()) {
		rows = append(rows, row{text: line})
	}
	return append(rows, row{text: fmt.Sprintf("Heap Alloc: %.2f MB", float64(o.memStats.HeapAlloc)/1024/1024)})
}

// toggleRect is the bounding box checkbox below n rows of text.
func toggleRect(n int) rl.Rectangle {
	y := float32(indent + n*lineHeight + lineHeight/2)
	return rl.NewRectangle(indent+5, y+2, fontHeight*0.8+100, fontHeight*0.8)
}

func hit(r rl.Rectangle, x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// HandleClick flips the bounding box toggle when (x, y) lands on it.
func (o *Overlay) HandleClick(src Source, x, y float32) bool {
	if !hit(toggleRect(len(o.rows(src, Frame{}))), x, y) {
		return false
	}
	o.ShowBoundingBoxes = !o.ShowBoundingBoxes
	return true
}

func (o *Overlay) Draw(src Source, vp render.Viewport) {
	if time.Since(o.lastSample) > time.Second {
		runtime.ReadMemStats(&o.memStats)
		o.lastSample = time.Now()
	}
	rows := o.rows(src, Frame{FPS: rl.GetFPS(), FrameTime: rl.GetFrameTime()})
	rl.DrawRectangle(0, 0, panelWidth, int32((len(rows)+3)*lineHeight), rl.NewColor(0, 0, 0, 160))

	y := int32(indent)
	for _, r := range rows {
		if r.header {
			rl.DrawText(r.text, indent, y, fontHeight, rl.Gold)
		} else {
			rl.DrawText(r.text, 2*indent, y, fontHeight, rl.White)
		}
		y += lineHeight
	}

	box := toggleRect(len(rows))
	side := int32(box.Height)
	rl.DrawRectangleLines(int32(box.X), int32(box.Y), side, side, rl.NewColor(150, 150, 150, 255))
	if o.ShowBoundingBoxes {
		rl.DrawRectangle(int32(box.X)+2, int32(box.Y)+2, side-4, side-4, rl.NewColor(100, 255, 100, 255))
		drawParticleBounds(src.Particles(), vp)
	}
	rl.DrawText("Show Bounding Boxes", int32(box.X)+side+5, int32(box.Y)-2, fontHeight, rl.White)
}

func drawParticleBounds(store *particle.Store, vp render.Viewport) {
	col := rl.NewColor(0, 255, 255, 100)
	store.Each(func(pt *particle.Particle) {
		if pt.Visual.Mesh == nil {
			return
		}
		lo, hi := pt.Visual.Mesh.Bounds()
		s := pt.Body.Transform.Scale
		w := (hi.X() - lo.X()) * s.X() * vp.Scale
		h := (hi.Y() - lo.Y()) * s.Y() * vp.Scale
		c := vp.ToScreen(pt.Body.Transform.Translation)
		rl.DrawRectangleLines(int32(c.X()-w/2), int32(c.Y()-h/2), int32(w), int32(h), col)
		rl.DrawRectangle(int32(c.X()-2), int32(c.Y()-2), 4, 4, rl.Red)
	})
}
