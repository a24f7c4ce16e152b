package monster

import (
	"fmt"

	"hellgrid/internal/config"
)

// Kind identifies an enemy archetype.
type Kind int

const (
	Grunt Kind = iota
	Fiend
	Brute
)

// Kinds lists every archetype in declaration order.
var Kinds = []Kind{Grunt, Fiend, Brute}

func (k Kind) String() string {
	switch k {
	case Grunt:
		return "grunt"
	case Fiend:
		return "fiend"
	case Brute:
		return "brute"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stats looks up the archetype template in the configuration.
func (k Kind) Stats(cfg *config.Config) config.EnemyStats {
	switch k {
	case Fiend:
		return cfg.Enemies.Fiend
	case Brute:
		return cfg.Enemies.Brute
	default:
		return cfg.Enemies.Grunt
	}
}

// MonsterState is the AI mode of a living monster.
type MonsterState int

const (
	StateWandering MonsterState = iota
	StateAlerted
)

func (s MonsterState) String() string {
	if s == StateAlerted {
		return "alerted"
	}
	return "wandering"
}
