package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AgentService manages the agent roster.
type AgentService struct {
	agentRepo *repository.AgentRepository
}

// NewAgentService creates a new AgentService.
func NewAgentService(agentRepo *repository.AgentRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo}
}

// CreateAgentParams holds the fields of an agent creation request.
type CreateAgentParams struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// CreateAgent validates and persists a new agent. Agents are created active
// and are immutable through this API afterwards.
func (s *AgentService) CreateAgent(ctx context.Context, params CreateAgentParams) (*domain.Agent, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Mobile = strings.TrimSpace(params.Mobile)

	if err := ValidateNewAgent(params.Name, params.Email, params.Mobile, params.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	agent, err := s.agentRepo.Create(ctx, &domain.Agent{
		Name:         params.Name,
		Email:        params.Email,
		Mobile:       params.Mobile,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("agent created", "agent_id", agent.ID)

	return agent, nil
}

// ListAgents returns all agents in creation order.
func (s *AgentService) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	return s.agentRepo.List(ctx)
}
