package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/repository"
)

// ListService handles spreadsheet uploads and list retrieval.
type ListService struct {
	pool      *pgxpool.Pool
	listRepo  *repository.ListRepository
	agentRepo *repository.AgentRepository
}

// NewListService creates a new ListService.
func NewListService(pool *pgxpool.Pool, listRepo *repository.ListRepository, agentRepo *repository.AgentRepository) *ListService {
	return &ListService{
		pool:      pool,
		listRepo:  listRepo,
		agentRepo: agentRepo,
	}
}

// Upload ingests a spreadsheet: parse the rows, partition them across the
// active agents, and persist the resulting list in one transaction. An upload
// either fully succeeds with a consistent list or fails with nothing created.
func (s *ListService) Upload(ctx context.Context, adminID, fileName string, data []byte) (*domain.UploadedList, error) {
	items, err := ParseItems(fileName, data)
	if err != nil {
		return nil, err
	}

	agents, err := s.agentRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active agents: %w", err)
	}

	dists, err := Distribute(items, agents)
	if err != nil {
		return nil, err
	}

	list := &domain.UploadedList{
		FileName:      fileName,
		TotalItems:    len(items),
		UploadedBy:    adminID,
		Distributions: dists,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := s.listRepo.Create(ctx, tx, list); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("list uploaded",
		"list_id", list.ID,
		"file_name", list.FileName,
		"total_items", list.TotalItems,
		"agents", list.AgentCount(),
	)

	return list, nil
}

// GetList returns one uploaded list with its distributions and items.
func (s *ListService) GetList(ctx context.Context, listID string) (*domain.UploadedList, error) {
	return s.listRepo.GetByID(ctx, listID)
}

// Lists returns all uploaded lists newest-first.
func (s *ListService) Lists(ctx context.Context) ([]*domain.UploadedList, error) {
	return s.listRepo.ListAll(ctx)
}

// Stats aggregates the dashboard counters.
type Stats struct {
	TotalAgents int
	TotalLists  int
	TotalItems  int
}

// GetStats computes dashboard aggregates.
func (s *ListService) GetStats(ctx context.Context) (*Stats, error) {
	agents, err := s.agentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.listRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.listRepo.TotalItems(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalAgents: agents,
		TotalLists:  lists,
		TotalItems:  items,
	}, nil
}
