package workorders

import (
	"testing"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
)

func TestNegateAssignments(t *testing.T) {
	deltas := negateAssignments([]models.WorkOrderAssignment{
		{WorkerID: 1, ServicesCount: 3},
		{WorkerID: 2, ServicesCount: 0},
		{WorkerID: 1, ServicesCount: 2},
	})

	assert.Equal(t, workerDelta{Jobs: -2, Services: -5}, deltas[1])
	assert.Equal(t, workerDelta{Jobs: -1, Services: 0}, deltas[2])
}

func TestNegateAssignmentsEmpty(t *testing.T) {
	deltas := negateAssignments(nil)
	assert.Empty(t, deltas)
}

func TestMergeDeltas(t *testing.T) {
	old := map[int64]workerDelta{
		1: {Jobs: -1, Services: -3},
		2: {Jobs: -1, Services: -2},
	}
	fresh := map[int64]workerDelta{
		1: {Jobs: 1, Services: 3},
		3: {Jobs: 1, Services: 4},
	}

	merged := mergeDeltas(old, fresh)

	// reassigning the same workload cancels out
	assert.Equal(t, workerDelta{Jobs: 0, Services: 0}, merged[1])
	assert.Equal(t, workerDelta{Jobs: -1, Services: -2}, merged[2])
	assert.Equal(t, workerDelta{Jobs: 1, Services: 4}, merged[3])
}

func TestMergeDeltasNilDestination(t *testing.T) {
	merged := mergeDeltas(nil, map[int64]workerDelta{7: {Jobs: 1, Services: 2}})
	assert.Equal(t, workerDelta{Jobs: 1, Services: 2}, merged[7])
}
