// Package combat resolves melee attacks between combatants.
package combat

import (
	"fmt"
	"strings"
)

// Combatant is the interface for any entity that can attack or be attacked.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetPower() int
	GetDefense() int
	TakeDamage(amount int) int // Returns actual damage taken
}

// Result contains the outcome of a single melee attack.
type Result struct {
	Damage  int    // Damage actually dealt
	Killed  bool   // True if the attack brought the target to 0 HP
	Message string // Human-readable description
}

// Melee resolves one attack from attacker against target.
// Damage is the attacker's power minus the target's defense, floored at zero.
func Melee(attacker, target Combatant) Result {
	desc := fmt.Sprintf("%s attacks %s", capitalize(attacker.GetName()), target.GetName())

	damage := attacker.GetPower() - target.GetDefense()
	if damage <= 0 {
		return Result{Message: desc + " but does no damage."}
	}

	dealt := target.TakeDamage(damage)
	return Result{
		Damage:  dealt,
		Killed:  !target.IsAlive(),
		Message: fmt.Sprintf("%s for %d hit points.", desc, dealt),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
