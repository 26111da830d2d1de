package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// worldScale is how many pixels one field unit spans.
const worldScale = 12

// hudScale is the integer upscale factor applied to the HUD panel (2 = 2× larger).
const hudScale = 2

// Game is the Ebiten front-end. It owns a Sim and drives it from the render
// loop; everything it draws comes from the sim's read-only accessors, so the
// renderer can never change an outcome.
type Game struct {
	cfg sim.Config
	s   *sim.Sim

	width      int
	height     int
	fieldW     int // battlefield width in pixels
	fieldH     int // battlefield height in pixels
	offX       int // pixel offset from window left to battlefield left
	offY       int

	battleLog *BattleLog
	logCursor int // sim log entries already copied into the battle log

	// Offscreen buffers: battlefield at world scale, HUD text at 1x.
	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image
	inspBuf  *ebiten.Image

	// Deterministic terrain noise patches, generated once.
	terrainPatches []terrainPatch

	// Camera pan + zoom.
	camX    float64 // pixel-space X of the camera centre on worldBuf
	camY    float64
	camZoom float64 // zoom factor (1.0 = native, >1 = zoomed in)

	// Display toggles.
	showRanges bool // R: attack radius circles
	showHUD    bool // H: monitor panel
	prevKeys   map[ebiten.Key]bool

	// Entity inspector (click-to-select panel).
	inspector     Inspector
	prevMouseLeft bool // for edge-triggered click detection

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	// Seed source for N-key restarts.
	restartRng *rand.Rand
}

// terrainPatch is a subtle ground colour variation tile.
type terrainPatch struct {
	x, y  float32
	w, h  float32
	shade uint8 // offset from base green
}

// New builds the front-end around a fresh simulation of cfg. A non-zero seed
// fixes the run; zero picks one from the clock.
func New(cfg sim.Config, seed int64) *Game {
	field := cfg.Field()
	fieldW := int(field.HalfWidth * 2 * worldScale)
	fieldH := int(field.HalfHeight * 2 * worldScale)
	g := &Game{
		cfg:        cfg,
		width:      borderWidth + fieldW + borderWidth + logPanelWidth,
		height:     borderWidth + fieldH + borderWidth,
		fieldW:     fieldW,
		fieldH:     fieldH,
		offX:       borderWidth,
		offY:       borderWidth,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		restartRng: rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- game only
	}
	g.worldBuf = ebiten.NewImage(fieldW, fieldH)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.initTerrainPatches()
	g.camX = float64(fieldW) / 2
	g.camY = float64(fieldH) / 2
	g.camZoom = 1.0
	g.simSpeed = 1.0
	g.restart(seed)
	return g
}

// restart replaces the sim with a fresh run of the same config.
func (g *Game) restart(seed int64) {
	if seed == 0 {
		seed = g.restartRng.Int63()
	}
	g.s = sim.New(g.cfg, sim.WithSeed(seed))
	g.battleLog = NewBattleLog()
	g.logCursor = 0
	g.inspector = Inspector{}
	g.tickAccum = 0
}

// Sim exposes the running simulation (used by tests).
func (g *Game) Sim() *sim.Sim { return g.s }

// initTerrainPatches generates deterministic subtle ground colour patches.
func (g *Game) initTerrainPatches() {
	rng := rand.New(rand.NewSource(54321)) // #nosec G404 -- cosmetic only
	count := 120
	g.terrainPatches = make([]terrainPatch, 0, count)
	for i := 0; i < count; i++ {
		w := float32(16 + rng.Intn(56))
		h := float32(16 + rng.Intn(56))
		x := float32(rng.Intn(g.fieldW))
		y := float32(rng.Intn(g.fieldH))
		// shade offset: -6 to +6 from base green
		shade := uint8(rng.Intn(13))
		g.terrainPatches = append(g.terrainPatches, terrainPatch{x: x, y: y, w: w, h: h, shade: shade})
	}
}

// --- Coordinate transforms ---

// simToPix converts field-unit coordinates (origin at field centre) into
// worldBuf pixel coordinates (origin top-left).
func (g *Game) simToPix(x, y float64) (float32, float32) {
	f := g.s.Field()
	return float32((x + f.HalfWidth) * worldScale), float32((y + f.HalfHeight) * worldScale)
}

// pixToSim is the inverse of simToPix.
func (g *Game) pixToSim(px, py float64) (float64, float64) {
	f := g.s.Field()
	return px/worldScale - f.HalfWidth, py/worldScale - f.HalfHeight
}

func (g *Game) Update() error {
	// Handle input every frame regardless of sim speed.
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.s.Step()
	}
	g.pumpBattleLog()
	return nil
}

// pumpBattleLog copies newly recorded sim events into the on-screen ring buffer.
func (g *Game) pumpBattleLog() {
	entries := g.s.Log().Entries()
	for ; g.logCursor < len(entries); g.logCursor++ {
		e := entries[g.logCursor]
		if !logWorthy(e) {
			continue
		}
		g.battleLog.Add(e.Tick, e.Entity, e.Kind, e.Key+" "+e.Value)
	}
}

// handleInput processes keypresses (edge-triggered where it matters).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// R: toggle attack radius circles. H: toggle HUD panel.
	if pressed(ebiten.KeyR) {
		g.showRanges = !g.showRanges
	}
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// N: restart with a fresh seed.
	if pressed(ebiten.KeyN) {
		g.restart(0)
	}

	// K: copy a debug report to the clipboard.
	if pressed(ebiten.KeyK) {
		g.copyDebugReport()
	}

	// I: toggle inspector raw/curated view.
	if pressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}

	// Camera pan: WASD or arrow keys.
	panSpeed := 6.0 / g.camZoom // pan slower when zoomed in
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}

	// Camera zoom: mouse wheel or =/- keys.
	const zoomMin, zoomMax = 0.5, 4.0
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if pressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if pressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	if g.camZoom < zoomMin {
		g.camZoom = zoomMin
	}
	if g.camZoom > zoomMax {
		g.camZoom = zoomMax
	}

	// Clamp camera centre to battlefield bounds (accounting for zoom).
	halfVW := float64(g.fieldW) / 2 / g.camZoom
	halfVH := float64(g.fieldH) / 2 / g.camZoom
	if halfVW > float64(g.fieldW)/2 {
		halfVW = float64(g.fieldW) / 2
	}
	if halfVH > float64(g.fieldH)/2 {
		halfVH = float64(g.fieldH) / 2
	}
	if g.camX < halfVW {
		g.camX = halfVW
	}
	if g.camX > float64(g.fieldW)-halfVW {
		g.camX = float64(g.fieldW) - halfVW
	}
	if g.camY < halfVH {
		g.camY = halfVH
	}
	if g.camY > float64(g.fieldH)-halfVH {
		g.camY = float64(g.fieldH) - halfVH
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 {
				if speeds[i+1] > g.simSpeed {
					g.simSpeed = speeds[i+1]
					break
				}
			}
		}
	}

	// Left mouse click: try to select an entity.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			g.handleInspectorClick(mx, my)
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.prevKeys = currentKeys
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background: very dark, outside battlefield.
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	// Render world content to worldBuf at (0,0) origin, then blit with camera transform.
	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	// Camera transform: translate so camX/camY is at viewport centre, then scale.
	var cam ebiten.GeoM
	cam.Translate(-g.camX, -g.camY)
	cam.Scale(g.camZoom, g.camZoom)
	cam.Translate(float64(g.fieldW)/2, float64(g.fieldH)/2)

	var blit ebiten.DrawImageOptions
	blit.GeoM = cam
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	// Battlefield border frame (drawn at screen coords, not transformed).
	ox := float32(g.offX)
	oy := float32(g.offY)
	fw := float32(g.fieldW)
	fh := float32(g.fieldH)
	borderCol := color.RGBA{R: 65, G: 90, B: 65, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, borderCol, false)
	vector.StrokeRect(screen, ox-3, oy-3, fw+6, fh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)

	// Battle log panel (screen coords).
	logX := g.offX + g.fieldW + g.offX
	g.battleLog.Draw(screen, logX, g.height)

	// HUD monitor panel.
	if g.showHUD {
		g.drawHUD(screen)
	}

	// Zoom indicator.
	if g.camZoom != 1.0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("zoom: %.1fx", g.camZoom), g.offX+6, g.offY+6)
	}

	// Outcome banner on terminal state.
	if g.s.Outcome() != sim.OutcomeOngoing {
		g.drawOutcomeBanner(screen)
	}

	// Entity inspector panel (screen-space, drawn over everything).
	g.drawInspector(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
