package store

import (
	"context"
	"fmt"
	"time"

	"volunteer/internal/utils"
	"volunteer/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var projectTableName = table("projects")

var projectColumns = utils.StructTagValues(types.Project{})

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Project(ctx context.Context, projectID int64) (*types.Project, error) {
	query, args, err := psql().
		Select(projectColumns...).
		From(projectTableName).
		Where(sq.Eq{"id": projectID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project query: %w", err)
	}

	var project types.Project
	err = pgxscan.Get(ctx, r.pool, &project, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	return &project, nil
}

// UpsertProject inserts or updates a project with a fixed id.
func (r *ProjectRepository) UpsertProject(ctx context.Context, project *types.Project) error {
	project.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(projectTableName).
		SetMap(utils.StructToMap(project)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause([]string{"title", "description", "is_active"})).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert project query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert project")
}
