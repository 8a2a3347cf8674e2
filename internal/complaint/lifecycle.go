package complaint

import "lapor/backend/internal/models"

// allowedTransitions is the legal-transition table of the lifecycle:
//
//	created → in_progress | rejected
//	in_progress → completed | rejected
//
// completed and rejected are terminal. Enum membership alone is not enough;
// an in-enum value can still be an illegal edge from the current state.
var allowedTransitions = map[models.Status][]models.Status{
	models.StatusCreated:    {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusCompleted, models.StatusRejected},
}

// canTransition reports whether the edge from → to is in the table.
func canTransition(from, to models.Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
