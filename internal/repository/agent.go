package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdesk/agentdesk/internal/domain"
)

var agentColumns = []string{"id", "name", "email", "mobile", "password_hash", "is_active", "created_at"}

// AgentRepository handles database operations for agents.
type AgentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository.
func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var agent domain.Agent
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.Mobile,
		&agent.PasswordHash,
		&agent.IsActive,
		&agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("scan agent: %w", err)
	}
	return &agent, nil
}

func scanAgents(rows pgx.Rows) ([]*domain.Agent, error) {
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return agents, nil
}

// Create inserts a new agent and returns it with generated fields.
func (r *AgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	query, args, err := psql.
		Insert("agents").
		Columns("name", "email", "mobile", "password_hash", "is_active").
		Values(agent.Name, agent.Email, agent.Mobile, agent.PasswordHash, agent.IsActive).
		Suffix("RETURNING " + joinColumns(agentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert agent query: %w", err)
	}

	created, err := scanAgent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAgentEmailTaken
		}
		return nil, fmt.Errorf("insert agent: %w", err)
	}
	return created, nil
}

// List retrieves all agents in creation order. Creation order is the stable
// order the distributor walks when handing out items.
func (r *AgentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	return scanAgents(rows)
}

// ListActive retrieves active agents in creation order.
func (r *AgentRepository) ListActive(ctx context.Context) ([]*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	return scanAgents(rows)
}

// Count returns the total number of agents.
func (r *AgentRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("agents").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return count, nil
}
