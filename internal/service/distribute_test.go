package service_test

import (
	"fmt"
	"testing"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			FirstName: fmt.Sprintf("Contact%d", i),
			Phone:     fmt.Sprintf("+1415555%04d", i),
		}
	}
	return items
}

func makeAgents(m int) []*domain.Agent {
	agents := make([]*domain.Agent, m)
	for i := range agents {
		agents[i] = &domain.Agent{
			ID:    fmt.Sprintf("agent-%d", i),
			Name:  fmt.Sprintf("Agent %d", i),
			Email: fmt.Sprintf("agent%d@example.com", i),
		}
	}
	return agents
}

func TestDistribute_TenAcrossThree(t *testing.T) {
	dists, err := service.Distribute(makeItems(10), makeAgents(3))
	require.NoError(t, err)
	require.Len(t, dists, 3)

	// First agent gets the extra item.
	assert.Equal(t, 4, dists[0].AssignedCount)
	assert.Equal(t, 3, dists[1].AssignedCount)
	assert.Equal(t, 3, dists[2].AssignedCount)

	assert.Equal(t, "agent-0", dists[0].AgentID)
	assert.Equal(t, "Contact0", dists[0].Items[0].FirstName)
}

func TestDistribute_NoAgents(t *testing.T) {
	_, err := service.Distribute(makeItems(5), nil)
	assert.ErrorIs(t, err, domain.ErrNoAgents)
}

func TestDistribute_FewerItemsThanAgents(t *testing.T) {
	dists, err := service.Distribute(makeItems(2), makeAgents(5))
	require.NoError(t, err)
	require.Len(t, dists, 5)

	counts := make([]int, len(dists))
	for i, dist := range dists {
		counts[i] = dist.AssignedCount
	}
	assert.Equal(t, []int{1, 1, 0, 0, 0}, counts)
}

func TestDistribute_Partition(t *testing.T) {
	for n := 0; n <= 25; n++ {
		for m := 1; m <= 7; m++ {
			items := makeItems(n)
			dists, err := service.Distribute(items, makeAgents(m))
			require.NoError(t, err)
			require.Len(t, dists, m)

			total := 0
			larger := 0
			seen := make(map[string]bool, n)
			for _, dist := range dists {
				require.Len(t, dist.Items, dist.AssignedCount)
				switch dist.AssignedCount {
				case n / m:
				case n/m + 1:
					larger++
				default:
					t.Fatalf("n=%d m=%d: count %d outside floor/floor+1", n, m, dist.AssignedCount)
				}
				total += dist.AssignedCount
				for _, item := range dist.Items {
					require.False(t, seen[item.Phone], "item duplicated across distributions")
					seen[item.Phone] = true
				}
			}

			assert.Equal(t, n, total, "n=%d m=%d: items dropped", n, m)
			assert.Equal(t, n%m, larger, "n=%d m=%d: wrong number of larger shares", n, m)
		}
	}
}
