package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlendQueueSizeCoversChunkTasks(t *testing.T) {
	// Small fields keep the floor.
	assert.Equal(t, 256, blendQueueSize(0))
	assert.Equal(t, 256, blendQueueSize(1))
	assert.Equal(t, 256, blendQueueSize(DefaultFoliageCount))

	// Large fields get one queue slot per chunk task, so a single frame's
	// submissions can never exceed the queue.
	for _, n := range []int{600_000, 1_000_000, 5_000_000} {
		chunks := (n + blendChunkSize - 1) / blendChunkSize
		assert.GreaterOrEqual(t, blendQueueSize(n), chunks, "foliage count %d", n)
	}

	// Exact at a chunk boundary and one past it.
	assert.Equal(t, 1000, blendQueueSize(1000*blendChunkSize))
	assert.Equal(t, 1001, blendQueueSize(1000*blendChunkSize+1))
}
