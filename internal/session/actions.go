package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/samdwyer/anotherrogue/internal/combat"
	"github.com/samdwyer/anotherrogue/internal/entity"
	"github.com/samdwyer/anotherrogue/internal/palette"
)

// ImpossibleError reports an action the player cannot take. It costs no turn
// and is shown in the message log rather than treated as a failure.
type ImpossibleError struct {
	Reason string
}

func (e *ImpossibleError) Error() string {
	return e.Reason
}

var errBlocked = &ImpossibleError{Reason: "That way is blocked."}

// MovePlayer moves the player by the delta, attacking whatever living actor
// stands in the way.
func (s *Session) MovePlayer(dx, dy int) error {
	tx, ty := s.Player.X+dx, s.Player.Y+dy
	if !s.Map.InBounds(tx, ty) {
		return errBlocked
	}

	if target := s.Map.BlockingEntityAt(tx, ty); target != nil {
		if !target.IsAlive() {
			return errBlocked
		}
		s.attack(s.Player, target)
		return nil
	}

	if !s.Map.IsWalkable(tx, ty) {
		return errBlocked
	}
	s.Player.Move(dx, dy)
	return nil
}

// Wait passes the player's turn.
func (s *Session) Wait() error {
	return nil
}

// Descend takes the stairs under the player to a freshly generated level.
func (s *Session) Descend(ctx context.Context) error {
	sx, sy := s.Map.StairsLocation()
	if s.Player.X != sx || s.Player.Y != sy {
		return &ImpossibleError{Reason: "There are no stairs here."}
	}

	s.Level++
	s.generateLevel(ctx)
	s.Log.AddMessage("You descend the staircase.", palette.Descend)
	return nil
}

// HandleEnemyTurns lets every living monster the player can see act once:
// attack when adjacent, otherwise step toward the player.
func (s *Session) HandleEnemyTurns() {
	for _, e := range s.Map.Actors() {
		if e == s.Player {
			continue
		}
		if !s.Player.IsAlive() {
			return
		}
		if !s.Map.IsVisible(e.X, e.Y) {
			continue
		}

		if e.DistanceTo(s.Player.X, s.Player.Y) <= 1 {
			s.attack(e, s.Player)
			continue
		}
		s.stepToward(e, s.Player.X, s.Player.Y)
	}
}

// stepToward tries the diagonal first, then each axis on its own.
func (s *Session) stepToward(e *entity.Entity, x, y int) {
	dx, dy := sign(x-e.X), sign(y-e.Y)
	for _, d := range [][2]int{{dx, dy}, {dx, 0}, {0, dy}} {
		if d == [2]int{0, 0} {
			continue
		}
		nx, ny := e.X+d[0], e.Y+d[1]
		if s.Map.IsWalkable(nx, ny) && s.Map.BlockingEntityAt(nx, ny) == nil {
			e.Move(d[0], d[1])
			return
		}
	}
}

func (s *Session) attack(attacker, target *entity.Entity) {
	result := combat.Melee(attacker, target)

	color := palette.EnemyAttack
	if attacker == s.Player {
		color = palette.PlayerAttack
	}
	s.Log.AddMessage(result.Message, color)

	if result.Killed {
		s.kill(target)
	}
}

func (s *Session) kill(e *entity.Entity) {
	if e == s.Player {
		s.Log.AddMessage("You died!", palette.PlayerDie)
	} else {
		s.Log.AddMessage(fmt.Sprintf("%s is dead!", upperFirst(e.Name)), palette.EnemyDie)
	}
	e.Die()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
