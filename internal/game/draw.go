package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// Attacker category colours.
var attackerColors = map[sim.AttackerCategory]color.RGBA{
	sim.AttackerFast:     {R: 235, G: 120, B: 60, A: 255},
	sim.AttackerTough:    {R: 170, G: 50, B: 50, A: 255},
	sim.AttackerBalanced: {R: 210, G: 80, B: 80, A: 255},
}

// Projectile tints keyed on the firing defender's category (cosmetic only).
var projectileColors = map[sim.DefenderCategory]color.RGBA{
	sim.DefenderLight:  {R: 230, G: 220, B: 120, A: 255},
	sim.DefenderRapid:  {R: 160, G: 220, B: 240, A: 255},
	sim.DefenderSniper: {R: 250, G: 250, B: 250, A: 255},
}

// healthColor lerps green→red as health fraction drops.
func healthColor(frac float64) color.RGBA {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return color.RGBA{
		R: uint8(200 * (1 - frac)),
		G: uint8(60 + 140*frac),
		B: 50,
		A: 255,
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	fw, fh := float32(g.fieldW), float32(g.fieldH)

	// Ground fill.
	vector.FillRect(screen, 0, 0, fw, fh, color.RGBA{R: 28, G: 42, B: 28, A: 255}, false)

	// Terrain noise patches: subtle colour variation on the ground.
	for _, tp := range g.terrainPatches {
		baseG := 42 + int(tp.shade) - 6
		if baseG < 0 {
			baseG = 0
		}
		baseR := 28 + int(tp.shade)/2 - 3
		baseB := 28 + int(tp.shade)/3 - 2
		if baseR < 0 {
			baseR = 0
		}
		if baseB < 0 {
			baseB = 0
		}
		vector.FillRect(screen, tp.x, tp.y, tp.w, tp.h,
			color.RGBA{R: uint8(baseR), G: uint8(baseG), B: uint8(baseB), A: 40}, false)
	}

	// Unit grid: one field unit per cell, with a coarser line every five.
	drawGrid(screen, g.fieldW, g.fieldH, worldScale, color.RGBA{R: 32, G: 47, B: 32, A: 255})
	drawGrid(screen, g.fieldW, g.fieldH, worldScale*5, color.RGBA{R: 42, G: 60, B: 42, A: 255})

	store := g.s.Store()

	// Range circles under everything else so they never obscure entities.
	if g.showRanges {
		for _, id := range store.DefenderIDs() {
			d, ok := store.Defender(id)
			if !ok {
				continue
			}
			px, py := g.simToPix(d.X, d.Y)
			vector.StrokeCircle(screen, px, py, float32(d.AttackRadius*worldScale),
				1.0, color.RGBA{R: 80, G: 140, B: 90, A: 70}, true)
		}
	}

	g.drawDefenders(screen)
	g.drawAttackers(screen)
	g.drawProjectiles(screen)

	// Selection ring for the inspected entity.
	if x, y, ok := g.inspector.position(store); ok {
		px, py := g.simToPix(x, y)
		vector.StrokeCircle(screen, px, py, worldScale*0.9,
			1.5, color.RGBA{R: 255, G: 240, B: 60, A: 220}, true)
	}
}

// drawDefenders renders each defender as a category-specific shape with its
// fill colour scaled by remaining health, plus a pulse ring under melee.
func (g *Game) drawDefenders(screen *ebiten.Image) {
	store := g.s.Store()
	for _, id := range store.DefenderIDs() {
		d, ok := store.Defender(id)
		if !ok {
			continue
		}
		px, py := g.simToPix(d.X, d.Y)
		col := healthColor(d.DisplayHealth() / d.MaxHealth)
		r := float32(worldScale) * 0.55

		switch d.Category {
		case sim.DefenderLight:
			vector.FillCircle(screen, px, py, r, col, true)
			vector.StrokeCircle(screen, px, py, r, 1.0, color.RGBA{R: 30, G: 60, B: 30, A: 255}, true)
		case sim.DefenderRapid:
			vector.FillRect(screen, px-r, py-r, r*2, r*2, col, false)
			vector.StrokeRect(screen, px-r, py-r, r*2, r*2, 1.0, color.RGBA{R: 30, G: 60, B: 30, A: 255}, false)
		case sim.DefenderSniper:
			var path vector.Path
			path.MoveTo(px, py-r*1.2)
			path.LineTo(px+r, py+r*0.8)
			path.LineTo(px-r, py+r*0.8)
			path.Close()
			fillPathColor(screen, &path, col)
		}

		// Melee pulse: expanding ring while an attacker is inside melee range.
		if d.UnderMelee {
			phase := float64(g.s.Tick()%20) / 20.0
			pr := r + float32(phase*worldScale*0.8)
			alpha := uint8(180 * (1 - phase))
			vector.StrokeCircle(screen, px, py, pr, 1.5,
				color.RGBA{R: 255, G: 120, B: 60, A: alpha}, true)
		}
	}
}

// drawAttackers renders attackers with category shapes and a health pip bar.
func (g *Game) drawAttackers(screen *ebiten.Image) {
	store := g.s.Store()
	for _, id := range store.AttackerIDs() {
		a, ok := store.Attacker(id)
		if !ok {
			continue
		}
		px, py := g.simToPix(a.X, a.Y)
		col := attackerColors[a.Category]

		switch a.Category {
		case sim.AttackerFast:
			// Small diamond.
			d := float32(worldScale) * 0.35
			var path vector.Path
			path.MoveTo(px, py-d)
			path.LineTo(px+d, py)
			path.LineTo(px, py+d)
			path.LineTo(px-d, py)
			path.Close()
			fillPathColor(screen, &path, col)
		case sim.AttackerTough:
			s := float32(worldScale) * 0.45
			vector.FillRect(screen, px-s, py-s, s*2, s*2, col, false)
		case sim.AttackerBalanced:
			vector.FillCircle(screen, px, py, float32(worldScale)*0.4, col, true)
		}

		// Health pips above the attacker.
		frac := a.DisplayHealth() / a.MaxHealth
		barW := float32(worldScale) * 0.9
		barY := py - float32(worldScale)*0.8
		vector.FillRect(screen, px-barW/2, barY, barW, 2, color.RGBA{R: 20, G: 20, B: 20, A: 200}, false)
		vector.FillRect(screen, px-barW/2, barY, barW*float32(frac), 2, healthColor(frac), false)
	}
}

// drawProjectiles renders projectiles with a short trail along their heading.
func (g *Game) drawProjectiles(screen *ebiten.Image) {
	store := g.s.Store()
	for _, id := range store.ProjectileIDs() {
		p, ok := store.Projectile(id)
		if !ok {
			continue
		}
		px, py := g.simToPix(p.X, p.Y)
		col := projectileColors[p.Origin]

		// Trail: fade back along the heading.
		trail := float32(p.Speed * worldScale * 1.5)
		tx := px - float32(p.HeadingX)*trail
		ty := py - float32(p.HeadingY)*trail
		faint := col
		faint.A = 90
		vector.StrokeLine(screen, tx, ty, px, py, 1.0, faint, true)

		vector.FillCircle(screen, px, py, 2.0, col, true)
	}
}

// fillPathColor fills a path with a solid colour via the ColorScale on the
// draw options (paths render white under the identity scale).
func fillPathColor(dst *ebiten.Image, path *vector.Path, col color.RGBA) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(col)
	vector.FillPath(dst, path, &vector.FillOptions{}, op)
}

// drawGrid draws vertical and horizontal lines at the given pixel spacing.
func drawGrid(screen *ebiten.Image, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	for x := 0; x <= w; x += spacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1.0, c, false)
	}
}

// drawHUD renders the per-tick monitors and key legend in the bottom-left
// corner. Text is drawn into hudBuf at 1x then composited at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	rpt := g.s.Report()

	speedStr := fmt.Sprintf("%gx", g.simSpeed)
	if g.simSpeed == 0 {
		speedStr = "PAUSED"
	}
	remaining := "unlimited"
	if rpt.RemainingToSpawn >= 0 {
		remaining = fmt.Sprintf("%d", rpt.RemainingToSpawn)
	}

	lines := []string{
		fmt.Sprintf("T=%d  %s", rpt.Tick, speedStr),
		fmt.Sprintf("defenders %d  attackers %d  shots %d", rpt.Defenders, rpt.Attackers, rpt.Projectiles),
		fmt.Sprintf("spawned %d  destroyed %d (f%d t%d b%d)", rpt.Spawned, rpt.Destroyed,
			rpt.DestroyedBy[sim.AttackerFast], rpt.DestroyedBy[sim.AttackerTough], rpt.DestroyedBy[sim.AttackerBalanced]),
		fmt.Sprintf("lost %d  avg hp %.1f  kill rate %.1f%%", rpt.DefendersLost, rpt.AvgDefenderHealth, rpt.KillRatePct),
		fmt.Sprintf("under melee: %d", rpt.UnderMelee),
		fmt.Sprintf("remaining to spawn: %s", remaining),
		"",
		"P pause  ,/. speed  N restart",
		"R ranges  K copy report  H hide",
		"WASD pan  wheel zoom  click inspect",
	}

	const lineH = 13
	const charW = 7 // basicfont.Face7x13 advance
	const padX = 6
	const padY = 5

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	for i, line := range lines {
		tx := int(bx) + padX
		ty := int(by) + padY + i*lineH + 10 // +10: baseline offset for Face7x13
		text.Draw(g.hudBuf, line, basicfont.Face7x13, tx, ty, color.RGBA{R: 200, G: 220, B: 200, A: 255})
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// drawOutcomeBanner renders the terminal result over the battlefield centre.
func (g *Game) drawOutcomeBanner(screen *ebiten.Image) {
	fr := g.s.Final()

	var label string
	var tint color.RGBA
	switch fr.Outcome {
	case sim.OutcomeVictory:
		label = "VICTORY"
		tint = color.RGBA{R: 90, G: 200, B: 110, A: 255}
	case sim.OutcomeDefeat:
		label = "DEFEAT"
		tint = color.RGBA{R: 220, G: 80, B: 70, A: 255}
	default:
		label = "TIMEOUT"
		tint = color.RGBA{R: 210, G: 190, B: 90, A: 255}
	}
	detail := fmt.Sprintf("ticks %d   destroyed %d/%d   lost %d   kill rate %.1f%%   N restart",
		fr.TicksSurvived, fr.Destroyed, fr.Spawned, fr.DefendersLost, fr.KillRatePct)

	const charW = 7
	scale := 3.0
	bw := float32(math.Max(float64(len(label)), float64(len(detail)))*charW*scale) + 40
	bh := float32(13*scale*2) + 36
	cx := float32(g.offX) + float32(g.fieldW)/2
	cy := float32(g.offY) + float32(g.fieldH)/2

	vector.FillRect(screen, cx-bw/2, cy-bh/2, bw, bh, color.RGBA{R: 8, G: 12, B: 8, A: 225}, false)
	vector.StrokeRect(screen, cx-bw/2, cy-bh/2, bw, bh, 2.0, tint, false)

	// Double-struck at a 1px offset for a bold face.
	lx := int(cx) - len(label)*charW/2
	ly := int(cy) - 10
	text.Draw(screen, label, basicfont.Face7x13, lx, ly, tint)
	text.Draw(screen, label, basicfont.Face7x13, lx+1, ly, tint)
	dx := int(cx) - len(detail)*charW/2
	text.Draw(screen, detail, basicfont.Face7x13, dx, int(cy)+12, color.RGBA{R: 210, G: 220, B: 210, A: 255})
}
