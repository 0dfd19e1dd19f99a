package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GuideRepository handles guide data access. A guide is stored as one row with
// the whole subject list in a JSONB column; every subject mutation rewrites
// the full list (last write wins, no version check).
type GuideRepository struct {
	pool *pgxpool.Pool
}

// NewGuideRepository creates a new GuideRepository.
func NewGuideRepository(pool *pgxpool.Pool) *GuideRepository {
	return &GuideRepository{pool: pool}
}

// Create inserts a new guide. The id is assigned here.
func (r *GuideRepository) Create(ctx context.Context, g *model.Guide) error {
	g.ID = uuid.New()
	if g.Subjects == nil {
		g.Subjects = []model.Subject{}
	}
	subjects, err := json.Marshal(g.Subjects)
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO guides (id, user_id, name, university, period_type, theme, is_public, subjects)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		g.ID, g.UserID, g.Name, g.University, g.PeriodType, g.Theme, g.IsPublic, subjects,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// GetByID retrieves a guide by id.
func (r *GuideRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Guide, error) {
	g := &model.Guide{}
	var subjects []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, university, period_type, theme, is_public, subjects, created_at, updated_at
		 FROM guides WHERE id = $1`, id,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.University, &g.PeriodType, &g.Theme,
		&g.IsPublic, &subjects, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subjects, &g.Subjects); err != nil {
		return nil, fmt.Errorf("unmarshal subjects: %w", err)
	}
	if g.Subjects == nil {
		g.Subjects = []model.Subject{}
	}
	return g, nil
}

// ListByOwner retrieves all guides owned by a user, newest first.
func (r *GuideRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Guide, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, university, period_type, theme, is_public, subjects, created_at, updated_at
		 FROM guides WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []model.Guide
	for rows.Next() {
		var g model.Guide
		var subjects []byte
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.University, &g.PeriodType,
			&g.Theme, &g.IsPublic, &subjects, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(subjects, &g.Subjects); err != nil {
			return nil, fmt.Errorf("unmarshal subjects: %w", err)
		}
		if g.Subjects == nil {
			g.Subjects = []model.Subject{}
		}
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

// ListPublic retrieves all public guides joined with their owner's name and
// country, newest first.
func (r *GuideRepository) ListPublic(ctx context.Context) ([]model.PublicGuide, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.user_id, g.name, g.university, g.period_type, g.theme, g.is_public,
		        g.subjects, g.created_at, g.updated_at, u.name, u.country
		 FROM guides g
		 JOIN users u ON u.id = g.user_id
		 WHERE g.is_public = TRUE
		 ORDER BY g.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []model.PublicGuide
	for rows.Next() {
		var pg model.PublicGuide
		var subjects []byte
		if err := rows.Scan(&pg.ID, &pg.UserID, &pg.Name, &pg.University, &pg.PeriodType,
			&pg.Theme, &pg.IsPublic, &subjects, &pg.CreatedAt, &pg.UpdatedAt,
			&pg.OwnerName, &pg.OwnerCountry); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(subjects, &pg.Subjects); err != nil {
			return nil, fmt.Errorf("unmarshal subjects: %w", err)
		}
		if pg.Subjects == nil {
			pg.Subjects = []model.Subject{}
		}
		guides = append(guides, pg)
	}
	return guides, rows.Err()
}

// UpdateSubjects replaces the guide's entire subject list.
func (r *GuideRepository) UpdateSubjects(ctx context.Context, id uuid.UUID, subjects []model.Subject) error {
	if subjects == nil {
		subjects = []model.Subject{}
	}
	data, err := json.Marshal(subjects)
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE guides SET subjects = $1, updated_at = NOW() WHERE id = $2`, data, id)
	return err
}

// UpdateTheme sets the guide's visual theme.
func (r *GuideRepository) UpdateTheme(ctx context.Context, id uuid.UUID, theme model.Theme) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE guides SET theme = $1, updated_at = NOW() WHERE id = $2`, theme, id)
	return err
}

// UpdateVisibility sets the guide's public flag.
func (r *GuideRepository) UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE guides SET is_public = $1, updated_at = NOW() WHERE id = $2`, isPublic, id)
	return err
}
