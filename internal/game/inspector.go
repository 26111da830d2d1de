package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 210 // buffer width in pixels (~34 chars at debug font)
	inspBufH  = 190 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// inspectKind says which entity collection the selection lives in.
type inspectKind int

const (
	inspectNone inspectKind = iota
	inspectDefender
	inspectAttacker
	inspectProjectile
)

// Inspector holds the selected entity handle and view toggle state. The
// selection is an ID, not a pointer: presence is re-checked against the store
// every frame, so a selection of a dead entity simply clears itself.
type Inspector struct {
	kind    inspectKind
	id      sim.EntityID
	rawView bool // false = curated, true = raw dump
}

// position resolves the selected entity's field coordinates, clearing the
// selection if the entity is gone.
func (ins *Inspector) position(store *sim.EntityStore) (float64, float64, bool) {
	switch ins.kind {
	case inspectDefender:
		if d, ok := store.Defender(ins.id); ok {
			return d.X, d.Y, true
		}
	case inspectAttacker:
		if a, ok := store.Attacker(ins.id); ok {
			return a.X, a.Y, true
		}
	case inspectProjectile:
		if p, ok := store.Projectile(ins.id); ok {
			return p.X, p.Y, true
		}
	}
	ins.kind = inspectNone
	return 0, 0, false
}

// handleInspectorClick checks whether a mouse click hit an entity and selects
// the nearest one within the pick radius. Returns true on a hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	// Inverse of Draw camera transform:
	//   screen = (pix - cam) * zoom + vpHalf + offset
	//   pix    = (screen - offset - vpHalf) / zoom + cam
	px := (float64(mx)-float64(g.offX)-float64(g.fieldW)/2)/g.camZoom + g.camX
	py := (float64(my)-float64(g.offY)-float64(g.fieldH)/2)/g.camZoom + g.camY
	wx, wy := g.pixToSim(px, py)

	// Pick radius: 16 screen pixels expressed in field units.
	clickRadius := 16.0 / g.camZoom / worldScale
	best2 := clickRadius * clickRadius
	kind := inspectNone
	var id sim.EntityID

	store := g.s.Store()
	consider := func(x, y float64, k inspectKind, eid sim.EntityID) {
		dx, dy := x-wx, y-wy
		if d2 := dx*dx + dy*dy; d2 < best2 {
			best2 = d2
			kind = k
			id = eid
		}
	}
	for _, eid := range store.DefenderIDs() {
		if d, ok := store.Defender(eid); ok {
			consider(d.X, d.Y, inspectDefender, eid)
		}
	}
	for _, eid := range store.AttackerIDs() {
		if a, ok := store.Attacker(eid); ok {
			consider(a.X, a.Y, inspectAttacker, eid)
		}
	}
	for _, eid := range store.ProjectileIDs() {
		if p, ok := store.Projectile(eid); ok {
			consider(p.X, p.Y, inspectProjectile, eid)
		}
	}

	if kind != inspectNone {
		g.inspector.kind = kind
		g.inspector.id = id
		return true
	}
	// Click on empty space: deselect.
	g.inspector.kind = inspectNone
	return false
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	store := g.s.Store()
	if _, _, ok := g.inspector.position(store); !ok {
		return
	}

	buf := g.inspBuf
	buf.Clear()
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	// Inner highlight along top edge.
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	lx := inspPad
	ly := inspPad

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}

	switch g.inspector.kind {
	case inspectDefender:
		d, _ := store.Defender(g.inspector.id)
		ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ DEFENDER %s ]  view:%s [I]", d.Label(), viewName), lx, ly)
		ly += inspLineH + 4
		vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
		ly += 4
		if g.inspector.rawView {
			g.drawDefenderRaw(buf, d, lx, ly)
		} else {
			g.drawDefenderCurated(buf, d, lx, ly)
		}
	case inspectAttacker:
		a, _ := store.Attacker(g.inspector.id)
		ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ ATTACKER %s ]  view:%s [I]", a.Label(), viewName), lx, ly)
		ly += inspLineH + 4
		vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
		ly += 4
		if g.inspector.rawView {
			g.drawAttackerRaw(buf, a, lx, ly)
		} else {
			g.drawAttackerCurated(buf, a, lx, ly)
		}
	case inspectProjectile:
		p, _ := store.Projectile(g.inspector.id)
		ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ PROJECTILE %s ]", p.Label()), lx, ly)
		ly += inspLineH + 4
		vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
		ly += 4
		g.drawProjectileInfo(buf, p, lx, ly)
	}

	// Blit inspBuf onto screen at inspScale, positioned bottom-right of the field.
	px := g.width - logPanelWidth - inspBufW*inspScale - g.offX - 12
	py := g.height - inspBufH*inspScale - g.offY - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// inspectorPrinter returns line/section/bar helpers writing into buf.
func inspectorPrinter(buf *ebiten.Image, lx int, ly *int) (func(string), func(string, float64)) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, *ly)
		*ly += inspLineH
	}
	bar := func(label string, v float64) {
		filled := int(v * 14)
		if filled < 0 {
			filled = 0
		}
		if filled > 14 {
			filled = 14
		}
		b := ""
		for i := 0; i < filled; i++ {
			b += "█"
		}
		for i := 0; i < 14-filled; i++ {
			b += "░"
		}
		ebitenutil.DebugPrintAt(buf, fmt.Sprintf("%-8s %s %.2f", label, b, v), lx, *ly)
		*ly += inspLineH
	}
	return line, bar
}

func (g *Game) drawDefenderCurated(buf *ebiten.Image, d *sim.Defender, lx, ly int) {
	line, bar := inspectorPrinter(buf, lx, &ly)
	line(fmt.Sprintf("category: %s", d.Category))
	bar("health", d.DisplayHealth()/d.MaxHealth)
	line(fmt.Sprintf("hp: %.0f/%.0f", d.DisplayHealth(), d.MaxHealth))
	line(fmt.Sprintf("radius: %.0f  dmg/shot: %.0f", d.AttackRadius, d.Damage))
	line(fmt.Sprintf("fire interval: %dt  cooldown: %dt", d.FireInterval, d.Cooldown))
	line(fmt.Sprintf("kills: %d", d.Kills))
	if d.UnderMelee {
		line("UNDER MELEE")
	}
	line(fmt.Sprintf("pos: (%.1f, %.1f)", d.X, d.Y))
}

func (g *Game) drawDefenderRaw(buf *ebiten.Image, d *sim.Defender, lx, ly int) {
	line, _ := inspectorPrinter(buf, lx, &ly)
	line(fmt.Sprintf("id=%d cat=%s", d.ID, d.Category))
	line(fmt.Sprintf("pos=(%.2f,%.2f)", d.X, d.Y))
	line(fmt.Sprintf("hp=%.2f/%.0f", d.Health, d.MaxHealth))
	line(fmt.Sprintf("radius=%.1f interval=%d", d.AttackRadius, d.FireInterval))
	line(fmt.Sprintf("dmg=%.1f cd=%d kills=%d", d.Damage, d.Cooldown, d.Kills))
	line(fmt.Sprintf("under_melee=%v", d.UnderMelee))
}

func (g *Game) drawAttackerCurated(buf *ebiten.Image, a *sim.Attacker, lx, ly int) {
	line, bar := inspectorPrinter(buf, lx, &ly)
	line(fmt.Sprintf("category: %s", a.Category))
	bar("health", a.DisplayHealth()/a.MaxHealth)
	line(fmt.Sprintf("hp: %.1f/%.1f", a.DisplayHealth(), a.MaxHealth))
	line(fmt.Sprintf("speed: %.2f  melee dmg: %.0f", a.Speed, a.MeleeDamage))
	line(fmt.Sprintf("melee cooldown: %dt", a.MeleeCooldown))
	target := "none"
	if d, ok := g.s.Store().Defender(a.Target); ok {
		target = fmt.Sprintf("%s (%.1f away)", d.Label(), math.Hypot(d.X-a.X, d.Y-a.Y))
	}
	line(fmt.Sprintf("target: %s", target))
	line(fmt.Sprintf("spawned: %s edge", a.SpawnEdge))
	line(fmt.Sprintf("pos: (%.1f, %.1f)", a.X, a.Y))
}

func (g *Game) drawAttackerRaw(buf *ebiten.Image, a *sim.Attacker, lx, ly int) {
	line, _ := inspectorPrinter(buf, lx, &ly)
	line(fmt.Sprintf("id=%d cat=%s", a.ID, a.Category))
	line(fmt.Sprintf("pos=(%.2f,%.2f)", a.X, a.Y))
	line(fmt.Sprintf("hp=%.2f/%.2f", a.Health, a.MaxHealth))
	line(fmt.Sprintf("spd=%.2f dmg=%.1f", a.Speed, a.MeleeDamage))
	line(fmt.Sprintf("target=%d cd=%d", a.Target, a.MeleeCooldown))
	line(fmt.Sprintf("edge=%s", a.SpawnEdge))
}

func (g *Game) drawProjectileInfo(buf *ebiten.Image, p *sim.Projectile, lx, ly int) {
	line, _ := inspectorPrinter(buf, lx, &ly)
	line(fmt.Sprintf("origin: %s (owner D%d)", p.Origin, p.Owner))
	line(fmt.Sprintf("damage: %.0f  speed: %.1f", p.Damage, p.Speed))
	line(fmt.Sprintf("lifetime left: %dt", p.Lifetime))
	target := "none (flying straight)"
	if a, ok := g.s.Store().Attacker(p.Target); ok {
		target = fmt.Sprintf("%s (%.1f away)", a.Label(), math.Hypot(a.X-p.X, a.Y-p.Y))
	}
	line(fmt.Sprintf("target: %s", target))
	line(fmt.Sprintf("heading: (%.2f, %.2f)", p.HeadingX, p.HeadingY))
	line(fmt.Sprintf("pos: (%.1f, %.1f)", p.X, p.Y))
}
