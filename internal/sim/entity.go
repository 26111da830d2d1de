package sim

import "fmt"

// EntityID is a stable handle issued by the EntityStore. IDs are never reused
// within a run; zero is never issued, so 0 doubles as "no target".
type EntityID int64

// --- Defender categories ---

// DefenderCategory selects a stationary defender archetype.
type DefenderCategory int

const (
	DefenderLight DefenderCategory = iota
	DefenderRapid
	DefenderSniper

	defenderCategoryCount = 3
)

func (c DefenderCategory) String() string {
	switch c {
	case DefenderLight:
		return "light"
	case DefenderRapid:
		return "rapid"
	case DefenderSniper:
		return "sniper"
	default:
		return "unknown"
	}
}

// DefenderProfile holds the base stats for a defender category.
type DefenderProfile struct {
	AttackRadius float64 // field units, inclusive engagement envelope
	FireInterval int     // ticks between shots
	Damage       float64 // damage carried by each projectile
	MaxHealth    float64
}

var defenderProfiles = map[DefenderCategory]DefenderProfile{
	DefenderLight:  {AttackRadius: 12, FireInterval: 18, Damage: 12, MaxHealth: 100},
	DefenderRapid:  {AttackRadius: 9, FireInterval: 6, Damage: 5, MaxHealth: 80},
	DefenderSniper: {AttackRadius: 22, FireInterval: 45, Damage: 30, MaxHealth: 60},
}

// Profile returns the base stats for this category.
func (c DefenderCategory) Profile() DefenderProfile {
	return defenderProfiles[c]
}

// --- Attacker categories ---

// AttackerCategory selects a mobile attacker archetype.
type AttackerCategory int

const (
	AttackerFast AttackerCategory = iota
	AttackerTough
	AttackerBalanced

	attackerCategoryCount = 3
)

func (c AttackerCategory) String() string {
	switch c {
	case AttackerFast:
		return "fast"
	case AttackerTough:
		return "tough"
	case AttackerBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// AttackerProfile holds the base stats for an attacker category.
// MaxHealth is scaled by the configured health multiplier at spawn.
type AttackerProfile struct {
	Speed       float64 // field units per tick
	MaxHealth   float64
	MeleeDamage float64 // damage per melee hit
}

var attackerProfiles = map[AttackerCategory]AttackerProfile{
	AttackerFast:     {Speed: 0.55, MaxHealth: 18, MeleeDamage: 6},
	AttackerTough:    {Speed: 0.22, MaxHealth: 60, MeleeDamage: 14},
	AttackerBalanced: {Speed: 0.35, MaxHealth: 32, MeleeDamage: 9},
}

// Profile returns the base stats for this category.
func (c AttackerCategory) Profile() AttackerProfile {
	return attackerProfiles[c]
}

// --- Combat constants ---

const (
	meleeRange       = 2.0 // field units, melee triggers strictly inside this
	meleeCooldown    = 30  // ticks between melee hits, reset whether or not the blow kills
	projectileSpeed  = 1.8 // field units per tick
	projectileLife   = 80  // ticks before an unspent projectile expires
	projectileHitRad = 1.0 // field units, overlap distance that counts as a collision
)

// --- Entities ---

// Defender is a stationary combat unit. Position is fixed for its lifetime.
type Defender struct {
	ID       EntityID
	Category DefenderCategory
	X, Y     float64

	AttackRadius float64
	FireInterval int
	Damage       float64
	Health       float64
	MaxHealth    float64
	Cooldown     int // ticks until the next shot is allowed
	Kills        int

	// UnderMelee is true while any attacker is within melee range. Read-only
	// presentation state for the renderer's pulse effect; recomputed each tick.
	UnderMelee bool
}

// DisplayHealth returns health clamped at 0 for presentation. Removal decisions
// always compare the raw value.
func (d *Defender) DisplayHealth() float64 {
	if d.Health < 0 {
		return 0
	}
	return d.Health
}

// Label returns a short identifier like "D3" for logs and panels.
func (d *Defender) Label() string {
	return fmt.Sprintf("D%d", d.ID)
}

// Attacker is a mobile hostile unit advancing on defenders.
type Attacker struct {
	ID       EntityID
	Category AttackerCategory
	X, Y     float64

	Speed         float64
	Health        float64
	MaxHealth     float64
	MeleeDamage   float64
	Target        EntityID // defender currently advanced on; 0 when none, re-resolved each tick
	SpawnEdge     FieldEdge
	MeleeCooldown int // ticks until the next melee hit is allowed
}

// DisplayHealth returns health clamped at 0 for presentation.
func (a *Attacker) DisplayHealth() float64 {
	if a.Health < 0 {
		return 0
	}
	return a.Health
}

// Label returns a short identifier like "A17".
func (a *Attacker) Label() string {
	return fmt.Sprintf("A%d", a.ID)
}

// Projectile is a short-lived homing round fired by a defender.
type Projectile struct {
	ID     EntityID
	Origin DefenderCategory // cosmetic only, drives the renderer's tint
	Owner  EntityID         // firing defender, for kill crediting
	X, Y   float64

	Damage   float64
	Speed    float64
	Target   EntityID // attacker homed on; 0 once the referent is gone
	Lifetime int      // remaining ticks before expiry

	// Unit heading, kept so a target-less projectile flies on straight.
	HeadingX float64
	HeadingY float64
}

// Label returns a short identifier like "P42".
func (p *Projectile) Label() string {
	return fmt.Sprintf("P%d", p.ID)
}
