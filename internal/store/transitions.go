package store

import "queueflow/internal/models"

var transitionMap = map[string][]string{
	"call_next":     {models.StatusWaiting},
	"start_service": {models.StatusCalled},
	"complete":      {models.StatusCalled, models.StatusInService},
	"cancel":        {models.StatusWaiting},
	"miss":          {models.StatusCalled, models.StatusInService},
}

func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
