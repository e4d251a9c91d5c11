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

var listColumns = []string{"id", "file_name", "total_items", "uploaded_by", "created_at"}

// ListRepository handles database operations for uploaded lists and their distributions.
type ListRepository struct {
	pool *pgxpool.Pool
}

// NewListRepository creates a new ListRepository.
func NewListRepository(pool *pgxpool.Pool) *ListRepository {
	return &ListRepository{pool: pool}
}

func scanList(row pgx.Row) (*domain.UploadedList, error) {
	var list domain.UploadedList
	err := row.Scan(
		&list.ID,
		&list.FileName,
		&list.TotalItems,
		&list.UploadedBy,
		&list.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListNotFound
		}
		return nil, fmt.Errorf("scan list: %w", err)
	}
	return &list, nil
}

// Create persists a list with its distributions and items inside tx.
// The whole upload is one transaction: either the complete list lands or
// nothing does. IDs and timestamps are filled in on the passed structs.
func (r *ListRepository) Create(ctx context.Context, tx pgx.Tx, list *domain.UploadedList) error {
	query, args, err := psql.
		Insert("lists").
		Columns("file_name", "total_items", "uploaded_by").
		Values(list.FileName, list.TotalItems, list.UploadedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert list query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&list.ID, &list.CreatedAt); err != nil {
		return fmt.Errorf("insert list: %w", err)
	}

	for i := range list.Distributions {
		dist := &list.Distributions[i]
		dist.ListID = list.ID

		query, args, err := psql.
			Insert("distributions").
			Columns("list_id", "agent_id", "assigned_count", "position").
			Values(list.ID, dist.AgentID, dist.AssignedCount, i).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert distribution query: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&dist.ID); err != nil {
			return fmt.Errorf("insert distribution: %w", err)
		}

		if len(dist.Items) == 0 {
			continue
		}

		itemsQb := psql.
			Insert("list_items").
			Columns("distribution_id", "position", "first_name", "phone", "notes")
		for j, item := range dist.Items {
			itemsQb = itemsQb.Values(dist.ID, j, item.FirstName, item.Phone, item.Notes)
		}

		query, args, err = itemsQb.ToSql()
		if err != nil {
			return fmt.Errorf("build insert items query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a single list with its distributions and items.
func (r *ListRepository) GetByID(ctx context.Context, listID string) (*domain.UploadedList, error) {
	query, args, err := psql.
		Select(listColumns...).
		From("lists").
		Where(sq.Eq{"id": listID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	list, err := scanList(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachDistributions(ctx, []*domain.UploadedList{list}); err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll retrieves all uploaded lists newest-first, distributions and items included.
func (r *ListRepository) ListAll(ctx context.Context) ([]*domain.UploadedList, error) {
	query, args, err := psql.
		Select(listColumns...).
		From("lists").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.UploadedList
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if err := r.attachDistributions(ctx, lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// stitchDistributions assigns each list its distributions and returns a map
// from distribution ID into the final slice elements. Each list's slice is
// assigned exactly once before any pointer is taken, so the returned pointers
// stay valid while items are appended through them.
func stitchDistributions(lists []*domain.UploadedList, dists []domain.Distribution) map[string]*domain.Distribution {
	grouped := make(map[string][]domain.Distribution, len(lists))
	for _, dist := range dists {
		grouped[dist.ListID] = append(grouped[dist.ListID], dist)
	}

	byDistID := make(map[string]*domain.Distribution, len(dists))
	for _, list := range lists {
		list.Distributions = grouped[list.ID]
		for i := range list.Distributions {
			byDistID[list.Distributions[i].ID] = &list.Distributions[i]
		}
	}
	return byDistID
}

func scanDistributions(rows pgx.Rows) ([]domain.Distribution, error) {
	defer rows.Close()

	var dists []domain.Distribution
	for rows.Next() {
		var dist domain.Distribution
		err := rows.Scan(&dist.ID, &dist.ListID, &dist.AgentID, &dist.AssignedCount, &dist.AgentName, &dist.AgentEmail)
		if err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		dists = append(dists, dist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distributions: %w", err)
	}
	return dists, nil
}

// attachDistributions loads distributions (with agent name and email) and their
// items for the given lists in two queries, then stitches them together.
func (r *ListRepository) attachDistributions(ctx context.Context, lists []*domain.UploadedList) error {
	if len(lists) == 0 {
		return nil
	}

	listIDs := make([]string, len(lists))
	for i, list := range lists {
		listIDs[i] = list.ID
	}

	query, args, err := psql.
		Select("d.id", "d.list_id", "d.agent_id", "d.assigned_count", "a.name", "a.email").
		From("distributions d").
		Join("agents a ON a.id = d.agent_id").
		Where(sq.Eq{"d.list_id": listIDs}).
		OrderBy("d.list_id", "d.position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build distributions query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query distributions: %w", err)
	}

	dists, err := scanDistributions(rows)
	if err != nil {
		return err
	}

	byDistID := stitchDistributions(lists, dists)

	if len(dists) == 0 {
		return nil
	}
	distIDs := make([]string, len(dists))
	for i, dist := range dists {
		distIDs[i] = dist.ID
	}

	query, args, err = psql.
		Select("id", "distribution_id", "first_name", "phone", "notes").
		From("list_items").
		Where(sq.Eq{"distribution_id": distIDs}).
		OrderBy("distribution_id", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}

	itemRows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.Item
		var distID string
		if err := itemRows.Scan(&item.ID, &distID, &item.FirstName, &item.Phone, &item.Notes); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		dist := byDistID[distID]
		dist.Items = append(dist.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("iterate items: %w", err)
	}

	return nil
}

// Count returns the total number of uploaded lists.
func (r *ListRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("lists").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	return count, nil
}

// TotalItems returns the sum of total_items across all lists.
func (r *ListRepository) TotalItems(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COALESCE(SUM(total_items), 0)").From("lists").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum list items: %w", err)
	}
	return total, nil
}
