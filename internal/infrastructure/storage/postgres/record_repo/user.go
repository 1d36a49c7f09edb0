package record_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/records/user"
	"labstock/internal/infrastructure/storage/postgres"
)

const userTable = "inv_users"

// UserRepo implements user.Repository.
type UserRepo struct {
	*BaseRecordRepo[*user.User]
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txm,
			userTable,
			postgres.ExtractDBColumns[user.User](),
			nil,
			func() *user.User { return &user.User{} },
		),
	}
}

// FindByEmail retrieves a user by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, err
	}
	return item, nil
}
