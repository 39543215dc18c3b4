package system

import (
	"slices"

	"github.com/milk9111/stormdrop/ecs"
)

func sortEntities(ents []ecs.Entity) {
	slices.SortFunc(ents, func(a, b ecs.Entity) int {
		switch {
		case uint32(a) < uint32(b):
			return -1
		case uint32(a) > uint32(b):
			return 1
		}
		return 0
	})
}
