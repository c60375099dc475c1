package workorders

import "github.com/dmarroquin/gearbox-backend/pkg/db/models"

// workerDelta is a signed increment to one worker's cumulative statistics.
type workerDelta struct {
	Jobs     int
	Services int
}

// negateAssignments produces the deltas that undo a set of live assignments:
// one job and the recorded services count per assignment, negated.
func negateAssignments(assignments []models.WorkOrderAssignment) map[int64]workerDelta {
	deltas := make(map[int64]workerDelta, len(assignments))
	for _, a := range assignments {
		current := deltas[a.WorkerID]
		current.Jobs--
		current.Services -= a.ServicesCount
		deltas[a.WorkerID] = current
	}
	return deltas
}

// mergeDeltas folds src into dst per worker and returns dst. Opposing deltas
// cancel so each worker receives a single net increment.
func mergeDeltas(dst, src map[int64]workerDelta) map[int64]workerDelta {
	if dst == nil {
		dst = make(map[int64]workerDelta, len(src))
	}
	for workerID, delta := range src {
		current := dst[workerID]
		current.Jobs += delta.Jobs
		current.Services += delta.Services
		dst[workerID] = current
	}
	return dst
}
