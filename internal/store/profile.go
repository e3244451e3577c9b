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
	profileGroupTableName = table("profile_groups")
	profileFieldTableName = table("profile_fields")
)

var profileFieldColumns = utils.StructTagValues(types.ProfileField{})

// group types that apply to any contact
var anyContactGroupTypes = []string{"", "Contact"}

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) ProfileGroupID(ctx context.Context, name string) (int64, error) {
	query, args, err := psql().
		Select("id").
		From(profileGroupTableName).
		Where(sq.Eq{"name": name, "is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate profile group query: %w", err)
	}

	var id int64
	err = pgxscan.Get(ctx, r.pool, &id, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return 0, types.ErrProfileNotFound
		}
		return 0, fmt.Errorf("failed to fetch profile group %s: %w", name, err)
	}

	return id, nil
}

// ProfileAppliesTo reports whether the group's contact type matches the
// contact's. A missing contact never matches.
func (r *ProfileRepository) ProfileAppliesTo(ctx context.Context, groupID, contactID int64) (bool, error) {
	query, args, err := psql().
		Select("g.group_type", "c.contact_type").
		From(profileGroupTableName + " g").
		Join(contactTableName + " c ON c.id = ?", contactID).
		Where(sq.Eq{"g.id": groupID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate profile applies query: %w", err)
	}

	var row struct {
		GroupType   string `db:"group_type"`
		ContactType string `db:"contact_type"`
	}
	err = pgxscan.Get(ctx, r.pool, &row, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check profile group %d: %w", groupID, err)
	}

	for _, t := range anyContactGroupTypes {
		if row.GroupType == t {
			return true, nil
		}
	}

	return row.GroupType == row.ContactType, nil
}

func profileFieldsQuery(groupID int64, scope types.ProfileScope) sq.SelectBuilder {
	q := psql().
		Select(profileFieldColumns...).
		From(profileFieldTableName).
		Where(sq.Eq{"profile_group_id": groupID, "is_active": true}).
		OrderBy("weight ASC", "id ASC")

	if scope == types.ProfileScopePublicCreate {
		q = q.Where(sq.Eq{"visibility": types.ProfileVisibilityPublic, "is_view_only": false})
	}

	return q
}

func (r *ProfileRepository) ProfileFields(ctx context.Context, groupID int64, scope types.ProfileScope) ([]*types.ProfileField, error) {
	query, args, err := profileFieldsQuery(groupID, scope).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile fields query: %w", err)
	}

	fields := make([]*types.ProfileField, 0)
	err = pgxscan.Select(ctx, r.pool, &fields, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile fields for group %d: %w", groupID, err)
	}

	return fields, nil
}

func (r *ProfileRepository) UpsertProfileGroup(ctx context.Context, group *types.ProfileGroup) (int64, error) {
	query, args, err := psql().
		Insert(profileGroupTableName).
		Columns("name", "title", "group_type", "is_active").
		Values(group.Name, group.Title, group.GroupType, group.IsActive).
		Suffix("ON CONFLICT (name) DO UPDATE SET " + buildUpdateClause([]string{"title", "group_type", "is_active"}) + " RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate upsert profile group query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&group.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert profile group %s: %w", group.Name, err)
	}

	return group.ID, nil
}

func (r *ProfileRepository) UpsertProfileField(ctx context.Context, field *types.ProfileField) error {
	update := utils.StructTagValues(types.ProfileField{}, "id", "profile_group_id", "field_name")

	query, args, err := psql().
		Insert(profileFieldTableName).
		SetMap(utils.StructToMap(field, "id")).
		Suffix("ON CONFLICT (profile_group_id, field_name) DO UPDATE SET " + buildUpdateClause(update)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert profile field query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert profile field")
}
