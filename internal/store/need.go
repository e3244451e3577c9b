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

var needTableName = table("needs")

var needColumns = utils.StructTagValues(types.Need{})

type NeedRepository struct {
	pool *pgxpool.Pool
}

func NewNeedRepository(pool *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{pool: pool}
}

// publicActiveNeedsQuery selects the active needs of a project whose
// visibility option is named "public".
func publicActiveNeedsQuery(projectID int64) sq.SelectBuilder {
	return psql().
		Select(utils.PrefixSliceOfStrings("n", needColumns)...).
		From(needTableName + " n").
		Join(optionValueTableName + " ov ON ov.value = n.visibility_id").
		Join(optionGroupTableName + " og ON og.id = ov.option_group_id").
		Where(sq.Eq{
			"n.project_id": projectID,
			"n.is_active":  true,
			"og.name":      types.OptionGroupVisibility,
			"ov.name":      types.VisibilityPublic,
		}).
		OrderBy("n.id ASC")
}

func (r *NeedRepository) PublicActiveNeeds(ctx context.Context, projectID int64) ([]*types.Need, error) {
	query, args, err := publicActiveNeedsQuery(projectID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public needs query: %w", err)
	}

	needs := make([]*types.Need, 0)
	err = pgxscan.Select(ctx, r.pool, &needs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs for project %d: %w", projectID, err)
	}

	return needs, nil
}

func (r *NeedRepository) NeedsByProject(ctx context.Context, projectID int64) ([]*types.Need, error) {
	query, args, err := psql().
		Select(needColumns...).
		From(needTableName).
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate needs query: %w", err)
	}

	needs := make([]*types.Need, 0)
	err = pgxscan.Select(ctx, r.pool, &needs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs for project %d: %w", projectID, err)
	}

	return needs, nil
}

func (r *NeedRepository) UpsertNeed(ctx context.Context, need *types.Need) error {
	need.CreatedAt = time.Now()

	update := utils.StructTagValues(types.Need{}, "id", "created_at")

	query, args, err := psql().
		Insert(needTableName).
		SetMap(utils.StructToMap(need)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(update)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert need query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert need")
}

// DeleteNeedsExcept removes a project's needs whose id is not in keep.
func (r *NeedRepository) DeleteNeedsExcept(ctx context.Context, projectID int64, keep []int64) error {
	query, args, err := psql().
		Delete(needTableName).
		Where(sq.Eq{"project_id": projectID}).
		Where(sq.NotEq{"id": keep}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete needs query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete needs")
}
