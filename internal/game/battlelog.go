package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// BattleEntry is a single line in the battle log.
type BattleEntry struct {
	Tick    int
	Label   string // e.g. "D3", "A17", or "--" for global events
	Kind    string // "defender", "attacker", "projectile", or "--"
	Message string
}

// BattleLog is a ring buffer of combat events rendered on-screen. It is fed
// from the sim's structured log each frame; old entries fall off the back.
type BattleLog struct {
	entries []BattleEntry
	head    int
	count   int
}

// NewBattleLog creates a battle log with a fixed capacity.
func NewBattleLog() *BattleLog {
	return &BattleLog{
		entries: make([]BattleEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (bl *BattleLog) Add(tick int, label, kind, msg string) {
	bl.entries[bl.head] = BattleEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	bl.head = (bl.head + 1) % logMaxEntries
	if bl.count < logMaxEntries {
		bl.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (bl *BattleLog) Recent() []BattleEntry {
	result := make([]BattleEntry, bl.count)
	for i := 0; i < bl.count; i++ {
		idx := (bl.head - bl.count + i + logMaxEntries) % logMaxEntries
		result[i] = bl.entries[idx]
	}
	return result
}

// Len returns the number of stored entries.
func (bl *BattleLog) Len() int { return bl.count }

// logWorthy reports whether a sim log entry belongs in the on-screen panel.
// Setup noise and verbose movement entries stay out; spawns, kills, losses,
// expiries, and the terminal outcome go in.
func logWorthy(e sim.SimLogEntry) bool {
	switch e.Category {
	case "spawn":
		return true
	case "combat":
		return e.Key == "defender_down" || e.Key == "attacker_down"
	case "outcome":
		return true
	}
	return false
}

// kindColor returns the indicator dot colour for an entity kind.
func kindColor(kind string) color.RGBA {
	switch kind {
	case "defender":
		return color.RGBA{R: 70, G: 180, B: 90, A: 255}
	case "attacker":
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case "projectile":
		return color.RGBA{R: 230, G: 200, B: 80, A: 255}
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
}

// Draw renders the battle log panel on the right side of the screen.
func (bl *BattleLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	// Panel background.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	// Left separator line.
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	// Title bar background.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", panelX+8, 2)
	// Title separator.
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := bl.Recent()

	// Draw from bottom up so newest is at bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	visible := entries[startIdx:]
	recent := 3 // how many latest entries to highlight

	y := 20
	for i, e := range visible {
		isRecent := i >= len(visible)-recent

		// Highlight row background for recent entries.
		if isRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}

		// Entity kind indicator dot.
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, kindColor(e.Kind), false)

		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
