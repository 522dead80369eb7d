package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
)

var _ port.UserFinder = (*UsersRepository)(nil)

type UsersRepository struct {
	sqldb sqldb
}

func NewUsersRepository(sqldb sqldb) UsersRepository {
	return UsersRepository{sqldb}
}

func (r UsersRepository) FindUser(
	ctx context.Context, email string,
) (domain.User, error) {
	const op = "UsersRepository.FindUser"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT user_id, company_id,
			COALESCE(email, ''), COALESCE(password, '')
		FROM users
		WHERE email = $1
		LIMIT 1;`

	var u domain.User
	err := r.sqldb.QueryRowContext(ctx, query, email).Scan(
		&u.UserID, &u.CompanyID, &u.Email, &u.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
