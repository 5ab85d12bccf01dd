package planning

import (
	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// FindGoal resolves ref against goals, first as an id and then as a case-insensitive
// name. When a closed goal and an active goal share a name, the active one wins.
func FindGoal(goals []entity.Goal, ref string) (entity.Goal, error) {
	if id, err := uuid.Parse(ref); err == nil {
		for _, g := range goals {
			if g.ID == id {
				return g, nil
			}
		}
	}

	var closed *entity.Goal
	for i := range goals {
		if !goals[i].MatchesName(ref) {
			continue
		}
		if goals[i].Active {
			return goals[i], nil
		}
		if closed == nil {
			closed = &goals[i]
		}
	}
	if closed != nil {
		return *closed, nil
	}

	return entity.Goal{}, domainerror.GoalNotFound(ref)
}
