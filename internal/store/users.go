package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// CreateUser inserts a user and returns its id.
func (s *Store) CreateUser(ctx context.Context, user types.User) (int64, error) {
	query := s.sq.
		Insert("users").
		Columns("email", "account_number").
		Values(user.Email, user.AccountNumber).
		Suffix("RETURNING id").
		RunWith(s.db)

	var id int64
	if err := query.QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert user", err)
	}

	return id, nil
}

// FindUserByAccountNumber returns the user owning the given account number.
func (s *Store) FindUserByAccountNumber(ctx context.Context, accountNumber string) (types.User, error) {
	query := s.sq.
		Select("id", "email", "account_number").
		From("users").
		Where(squirrel.Eq{"account_number": accountNumber}).
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return types.User{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var user types.User

	row := s.db.QueryRowContext(ctx, sqlQuery, args...)
	err = row.Scan(&user.ID, &user.Email, &user.AccountNumber)
	if err == sql.ErrNoRows {
		return types.User{}, errors.Newf(errors.ErrCodeUserNotFound,
			"no user found with account number %s", accountNumber)
	}
	if err != nil {
		return types.User{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan user", err)
	}

	return user, nil
}
