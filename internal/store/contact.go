package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"volunteer/internal/utils"
	"volunteer/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	contactTableName      = table("contacts")
	contactValueTableName = table("contact_values")
)

var contactValueColumns = utils.StructTagValues(types.ContactValue{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) ContactValues(ctx context.Context, contactID int64) ([]*types.ContactValue, error) {
	query, args, err := psql().
		Select(contactValueColumns...).
		From(contactValueTableName).
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("field_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact values query: %w", err)
	}

	values := make([]*types.ContactValue, 0)
	err = pgxscan.Select(ctx, r.pool, &values, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact values: %w", err)
	}

	return values, nil
}

// CreateProfileContact writes profile values onto a contact. With a session
// contact the values merge into it; otherwise a new contact is created.
// Submitted values never select an existing contact. Only values of fields
// belonging to groupID are written.
func (r *ContactRepository) CreateProfileContact(ctx context.Context, values map[string]string, fields []*types.ProfileField, contactID *int64, groupID int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()

	id, err := r.resolveContact(ctx, tx, contactID, now)
	if err != nil {
		return 0, err
	}

	rows := profileRows(id, values, fields, groupID, now)
	if len(rows) > 0 {
		builder := psql().
			Insert(contactValueTableName).
			Columns("contact_id", "field_name", "value", "updated_at")

		for _, row := range rows {
			builder = builder.Values(row.ContactID, row.FieldName, row.Value, row.UpdatedAt)
		}

		query, args, err := builder.
			Suffix("ON CONFLICT (contact_id, field_name) DO UPDATE SET " + buildUpdateClause([]string{"value", "updated_at"})).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to generate contact values query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to write contact values: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (r *ContactRepository) resolveContact(ctx context.Context, tx pgx.Tx, contactID *int64, now time.Time) (int64, error) {
	if contactID != nil {
		query, args, err := psql().
			Update(contactTableName).
			Set("updated_at", now).
			Where(sq.Eq{"id": *contactID}).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to generate touch contact query: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to update contact %d: %w", *contactID, err)
		}
		if tag.RowsAffected() == 0 {
			return 0, types.ErrContactNotFound
		}

		return *contactID, nil
	}

	contact := &types.Contact{
		ContactType: types.ContactTypeIndividual,
		Hash:        utils.NanoID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := psql().
		Insert(contactTableName).
		SetMap(utils.StructToMap(contact, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert contact query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&contact.ID); err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}

	return contact.ID, nil
}

// profileRows keeps the non-empty values of known fields, in field order.
func profileRows(contactID int64, values map[string]string, fields []*types.ProfileField, groupID int64, now time.Time) []types.ContactValue {
	rows := make([]types.ContactValue, 0, len(values))
	for _, field := range fields {
		if groupID != 0 && field.GroupID != 0 && field.GroupID != groupID {
			continue
		}

		value := strings.TrimSpace(values[field.Name])
		if value == "" {
			continue
		}

		rows = append(rows, types.ContactValue{
			ContactID: contactID,
			FieldName: field.Name,
			Value:     value,
			UpdatedAt: now,
		})
	}
	return rows
}
