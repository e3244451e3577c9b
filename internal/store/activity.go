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

var activityTableName = table("activities")

var activityColumns = utils.StructTagValues(types.VolunteerActivity{})

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) CreateVolunteerActivity(ctx context.Context, activity *types.VolunteerActivity) error {
	activity.CreatedAt = time.Now()
	if activity.ActivityType == "" {
		activity.ActivityType = types.ActivityTypeVolunteer
	}

	query, args, err := psql().
		Insert(activityTableName).
		SetMap(utils.StructToMap(activity, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert activity query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&activity.ID)
	return utils.ErrorWrapOrNil(err, "failed to create volunteer activity")
}

// ActivitiesByNeed lists sign-ups for a need, newest first. Test sign-ups are
// only included when includeTest is set.
func (r *ActivityRepository) ActivitiesByNeed(ctx context.Context, needID int64, includeTest bool) ([]*types.VolunteerActivity, error) {
	q := psql().
		Select(activityColumns...).
		From(activityTableName).
		Where(sq.Eq{"need_id": needID}).
		OrderBy("created_at DESC")

	if !includeTest {
		q = q.Where(sq.Eq{"is_test": false})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activities query: %w", err)
	}

	activities := make([]*types.VolunteerActivity, 0)
	err = pgxscan.Select(ctx, r.pool, &activities, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities for need %d: %w", needID, err)
	}

	return activities, nil
}
