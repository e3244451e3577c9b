package store

import (
	"context"
	"fmt"

	"volunteer/internal/utils"
	"volunteer/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	optionGroupTableName = table("option_groups")
	optionValueTableName = table("option_values")
)

var optionValueColumns = utils.StructTagValues(types.OptionValue{})

type OptionRepository struct {
	pool *pgxpool.Pool
}

func NewOptionRepository(pool *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{pool: pool}
}

func optionValuesQuery(groupName string) sq.SelectBuilder {
	return psql().
		Select(utils.PrefixSliceOfStrings("ov", optionValueColumns)...).
		From(optionValueTableName + " ov").
		Join(optionGroupTableName + " og ON og.id = ov.option_group_id").
		Where(sq.Eq{"og.name": groupName, "ov.is_active": true}).
		OrderBy("ov.weight ASC", "ov.id ASC")
}

func (r *OptionRepository) OptionValues(ctx context.Context, groupName string) ([]*types.OptionValue, error) {
	query, args, err := optionValuesQuery(groupName).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate option values query: %w", err)
	}

	values := make([]*types.OptionValue, 0)
	err = pgxscan.Select(ctx, r.pool, &values, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch option values for %s: %w", groupName, err)
	}

	return values, nil
}

// RoleLabels maps every active volunteer role value to its label.
func (r *OptionRepository) RoleLabels(ctx context.Context) (map[int64]string, error) {
	values, err := r.OptionValues(ctx, types.OptionGroupVolunteerRole)
	if err != nil {
		return nil, err
	}

	labels := make(map[int64]string, len(values))
	for _, v := range values {
		labels[v.Value] = v.Label
	}

	return labels, nil
}

func (r *OptionRepository) ActivityStatusID(ctx context.Context, label string) (int64, error) {
	query, args, err := optionValuesQuery(types.OptionGroupActivityStatus).
		Where(sq.Eq{"ov.label": label}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate activity status query: %w", err)
	}

	var value types.OptionValue
	err = pgxscan.Get(ctx, r.pool, &value, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return 0, fmt.Errorf("activity status %q: %w", label, types.ErrOptionNotFound)
		}
		return 0, fmt.Errorf("failed to fetch activity status %q: %w", label, err)
	}

	return value.Value, nil
}

// UpsertOptionGroup creates the group if needed and returns its id.
func (r *OptionRepository) UpsertOptionGroup(ctx context.Context, group *types.OptionGroup) (int64, error) {
	query, args, err := psql().
		Insert(optionGroupTableName).
		Columns("name", "title", "is_active").
		Values(group.Name, group.Title, group.IsActive).
		Suffix("ON CONFLICT (name) DO UPDATE SET " + buildUpdateClause([]string{"title", "is_active"}) + " RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate upsert option group query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&group.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert option group %s: %w", group.Name, err)
	}

	return group.ID, nil
}

func (r *OptionRepository) UpsertOptionValue(ctx context.Context, value *types.OptionValue) error {
	query, args, err := psql().
		Insert(optionValueTableName).
		SetMap(utils.StructToMap(value, "id")).
		Suffix("ON CONFLICT (option_group_id, name) DO UPDATE SET " + buildUpdateClause([]string{"label", "value", "weight", "is_active"})).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert option value query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert option value")
}
