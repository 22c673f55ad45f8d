package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sparkify/etl/types"
)

// UserRepository handles persistence for the users dimension.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertMany inserts users in order. A known user only has its level
// overwritten, so the last row for an id decides the stored level.
func (r *UserRepository) UpsertMany(ctx context.Context, users []types.User) (int64, error) {
	rows := make([][]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, []any{user.ID, user.FirstName, user.LastName, user.Gender, user.Level})
	}

	affected, err := ExecMany(ctx, r.db, userUpsertQuery, rows)
	return affected, storageErr("upsert", "users", err)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (types.User, error) {
	var user types.User
	err := r.db.QueryRowContext(ctx, userGetQuery, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Gender,
		&user.Level,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, storageErr("get", "users", err)
	}
	return user, nil
}
