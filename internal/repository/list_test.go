package repository

import (
	"fmt"
	"testing"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStitchDistributions_PointersReachTheLists(t *testing.T) {
	lists := []*domain.UploadedList{{ID: "l1"}, {ID: "l2"}}
	dists := []domain.Distribution{
		{ID: "d1", ListID: "l1", AssignedCount: 1},
		{ID: "d2", ListID: "l1", AssignedCount: 1},
		{ID: "d3", ListID: "l1", AssignedCount: 1},
		{ID: "d4", ListID: "l2", AssignedCount: 2},
	}

	byDistID := stitchDistributions(lists, dists)
	require.Len(t, byDistID, 4)

	// Append items through the map the way the item-stitching loop does. Every
	// distribution of a multi-distribution list must receive its items, not
	// only the last one.
	byDistID["d1"].Items = append(byDistID["d1"].Items, domain.Item{FirstName: "A"})
	byDistID["d2"].Items = append(byDistID["d2"].Items, domain.Item{FirstName: "B"})
	byDistID["d3"].Items = append(byDistID["d3"].Items, domain.Item{FirstName: "C"})
	byDistID["d4"].Items = append(byDistID["d4"].Items,
		domain.Item{FirstName: "D"}, domain.Item{FirstName: "E"})

	require.Len(t, lists[0].Distributions, 3)
	for i := range lists[0].Distributions {
		dist := &lists[0].Distributions[i]
		assert.Len(t, dist.Items, dist.AssignedCount, "distribution %d lost its items", i)
	}
	assert.Equal(t, "A", lists[0].Distributions[0].Items[0].FirstName)
	assert.Equal(t, "B", lists[0].Distributions[1].Items[0].FirstName)
	assert.Equal(t, "C", lists[0].Distributions[2].Items[0].FirstName)

	require.Len(t, lists[1].Distributions, 1)
	assert.Equal(t,
		[]domain.Item{{FirstName: "D"}, {FirstName: "E"}},
		lists[1].Distributions[0].Items)
}

func TestStitchDistributions_ManyDistributions(t *testing.T) {
	list := &domain.UploadedList{ID: "l1"}
	var dists []domain.Distribution
	for i := 0; i < 16; i++ {
		dists = append(dists, domain.Distribution{
			ID:            fmt.Sprintf("d%d", i),
			ListID:        "l1",
			AssignedCount: 1,
		})
	}

	byDistID := stitchDistributions([]*domain.UploadedList{list}, dists)
	for id, dist := range byDistID {
		dist.Items = append(dist.Items, domain.Item{FirstName: id})
	}

	require.Len(t, list.Distributions, 16)
	for i := range list.Distributions {
		dist := &list.Distributions[i]
		require.Len(t, dist.Items, 1)
		assert.Equal(t, dist.ID, dist.Items[0].FirstName)
	}
}

func TestStitchDistributions_ListWithoutDistributions(t *testing.T) {
	lists := []*domain.UploadedList{{ID: "l1"}}

	byDistID := stitchDistributions(lists, nil)
	assert.Empty(t, byDistID)
	assert.Empty(t, lists[0].Distributions)
}
