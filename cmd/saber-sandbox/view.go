package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/systems"
	"github.com/lixenwraith/saber-drill/vmath"
)

const (
	glyphBolt    = '•'
	glyphTrail   = '·'
	glyphDrone   = 'Ж'
	glyphPlayer  = '◎'
	glyphBlade   = '█'
	glyphHilt    = '▪'
	glyphHit     = '✖'
	glyphDeflect = '✦'
	glyphGrid    = '.'

	flashDuration = 0.35 // seconds
	gridSpacing   = 1.0  // world units
)

var (
	colorBg        = tcell.NewRGBColor(26, 27, 38)
	styleBg        = tcell.StyleDefault.Background(colorBg)
	styleGrid      = styleBg.Foreground(tcell.NewRGBColor(60, 62, 80))
	styleHUD       = styleBg.Foreground(tcell.NewRGBColor(192, 202, 245))
	styleHelp      = styleBg.Foreground(tcell.NewRGBColor(100, 100, 110))
	stylePlayer    = styleBg.Foreground(tcell.ColorWhite).Bold(true)
	styleBlade     = styleBg.Foreground(tcell.NewRGBColor(0, 255, 255))
	styleHilt      = styleBg.Foreground(tcell.NewRGBColor(150, 150, 160))
	styleIdle      = styleBg.Foreground(tcell.NewRGBColor(255, 160, 50))
	styleDash      = styleBg.Foreground(tcell.NewRGBColor(255, 0, 255)).Bold(true)
	styleIncoming  = styleBg.Foreground(tcell.NewRGBColor(255, 60, 60)).Bold(true)
	styleReflected = styleBg.Foreground(tcell.NewRGBColor(80, 255, 120)).Bold(true)
	styleTrail     = styleBg.Foreground(tcell.NewRGBColor(120, 40, 40))
	styleHit       = styleBg.Foreground(tcell.NewRGBColor(255, 40, 40)).Bold(true)
	styleDeflect   = styleBg.Foreground(tcell.NewRGBColor(255, 230, 80)).Bold(true)
)

type flash struct {
	pos   mgl64.Vec3
	glyph rune
	style tcell.Style
	ttl   float64
}

// frame is everything drawn in one refresh
type frame struct {
	snap   engine.Snapshot
	player core.PlayerPose
	blade  core.BladeSegment
	paused bool
	muted  bool
	auto   bool
}

// view renders the x/z plane from above: +x right, -z (toward the drone) up
// Rows are twice as tall as columns, so z uses half the horizontal scale
// It is the simulation's Scene and an event observer for impact flashes
type view struct {
	screen tcell.Screen
	scale  float64    // cells per world unit, horizontal
	center mgl64.Vec3 // world point at the anchor cell

	bolts   map[core.VisualHandle]core.BoltView
	next    core.VisualHandle
	flashes []flash
}

func newView(screen tcell.Screen, scale float64) *view {
	return &view{
		screen: screen,
		scale:  scale,
		bolts:  make(map[core.VisualHandle]core.BoltView),
	}
}

func (v *view) SpawnBolt(b core.BoltView) core.VisualHandle {
	v.next++
	v.bolts[v.next] = b
	return v.next
}

func (v *view) SyncBolt(h core.VisualHandle, b core.BoltView) {
	if _, ok := v.bolts[h]; ok {
		v.bolts[h] = b
	}
}

func (v *view) RemoveBolt(h core.VisualHandle) {
	delete(v.bolts, h)
}

func (v *view) OnEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPlayerHit:
		v.flashes = append(v.flashes, flash{pos: ev.Position, glyph: glyphHit, style: styleHit, ttl: flashDuration})
	case event.EventBoltDeflected:
		v.flashes = append(v.flashes, flash{pos: ev.Position, glyph: glyphDeflect, style: styleDeflect, ttl: flashDuration})
	}
}

// age decays flashes by dt and drops expired ones in place
func (v *view) age(dt float64) {
	kept := v.flashes[:0]
	for _, f := range v.flashes {
		f.ttl -= dt
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	v.flashes = kept
}

// anchor is the screen cell of v.center; two thirds down leaves room for the drone
func (v *view) anchor() (int, int) {
	w, h := v.screen.Size()
	return w / 2, h * 2 / 3
}

func (v *view) project(p mgl64.Vec3) (int, int) {
	ax, ay := v.anchor()
	x := ax + int(math.Round((p.X()-v.center.X())*v.scale))
	y := ay + int(math.Round((p.Z()-v.center.Z())*v.scale/2))
	return x, y
}

// put clips to the playfield; row 0 and the last row belong to the HUD
func (v *view) put(x, y int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	if x < 0 || x >= w || y < 1 || y >= h-1 {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *view) draw(f frame) {
	v.screen.Fill(' ', styleBg)
	w, h := v.screen.Size()

	v.drawGrid(w, h)

	for _, b := range v.bolts {
		if dir, ok := vmath.Normalize(b.Velocity); ok {
			tx, ty := v.project(b.Position.Sub(dir.Mul(2 / v.scale)))
			v.put(tx, ty, glyphTrail, styleTrail)
		}
	}

	px, py := v.project(f.player.Position)
	v.put(px, py, glyphPlayer, stylePlayer)

	v.drawBlade(f.blade)

	droneStyle := styleIdle
	if f.snap.Drone.State == string(systems.DroneDash) {
		droneStyle = styleDash
	}
	dx, dy := v.project(f.snap.Drone.Position)
	v.put(dx, dy, glyphDrone, droneStyle)

	for _, b := range v.bolts {
		style := styleIncoming
		if b.Reflected {
			style = styleReflected
		}
		bx, by := v.project(b.Position)
		v.put(bx, by, glyphBolt, style)
	}

	for _, fl := range v.flashes {
		x, y := v.project(fl.pos)
		v.put(x, y, fl.glyph, fl.style)
	}

	v.drawHUD(f, w, h)
}

func (v *view) drawGrid(w, h int) {
	step := int(math.Round(gridSpacing * v.scale))
	if step < 2 {
		return
	}
	ax, ay := v.anchor()
	rowStep := step / 2
	if rowStep < 1 {
		rowStep = 1
	}
	for y := ay % rowStep; y < h; y += rowStep {
		for x := ax % step; x < w; x += step {
			v.put(x, y, glyphGrid, styleGrid)
		}
	}
}

func (v *view) drawBlade(seg core.BladeSegment) {
	x0, y0 := v.project(seg.Start())
	x1, y1 := v.project(seg.End())

	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := x0 + int(math.Round(float64(x1-x0)*t))
		y := y0 + int(math.Round(float64(y1-y0)*t))
		v.put(x, y, glyphBlade, styleBlade)
	}
	if steps > 0 {
		v.put(x0, y0, glyphHilt, styleHilt)
	}
}

func (v *view) drawHUD(f frame, w, h int) {
	s := f.snap
	status := fmt.Sprintf(" t=%5.1fs  hits %d  deflected %d  live %d  drone %-4s %.1fm  next %.2fs",
		s.Time, s.Score.HitsTaken, s.Score.HitsDeflected, len(s.Bolts), s.Drone.State, s.Drone.Distance, math.Max(0, s.NextShot))

	var flags string
	if f.paused {
		flags += " [PAUSED]"
	}
	if f.auto {
		flags += " [AUTO]"
	}
	if f.muted {
		flags += " [MUTE]"
	}
	v.text(0, 0, status+flags, styleHUD)

	if h > 1 {
		v.text(0, h-1, " arrows:blade  a/d:lean  w/s:pitch  j/l:turn  g:auto  space:pause  r:reset  m:mute  q:quit", styleHelp)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
