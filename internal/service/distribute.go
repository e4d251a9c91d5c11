package service

import (
	"github.com/opsdesk/agentdesk/internal/domain"
)

// Distribute partitions items across agents as evenly as possible. Every agent
// receives floor(N/M) items and the first N mod M agents, in the given order,
// receive one extra. Each item lands in exactly one distribution.
//
// The agent order must be stable (the repository returns creation order) so
// that repeated uploads favor the same agents deterministically.
func Distribute(items []domain.Item, agents []*domain.Agent) ([]domain.Distribution, error) {
	if len(agents) == 0 {
		return nil, domain.ErrNoAgents
	}

	base := len(items) / len(agents)
	extra := len(items) % len(agents)

	dists := make([]domain.Distribution, len(agents))
	offset := 0
	for i, agent := range agents {
		count := base
		if i < extra {
			count++
		}

		dists[i] = domain.Distribution{
			AgentID:       agent.ID,
			AgentName:     agent.Name,
			AgentEmail:    agent.Email,
			AssignedCount: count,
			Items:         items[offset : offset+count : offset+count],
		}
		offset += count
	}

	return dists, nil
}
