package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type UserRepository struct {
	client *backend.Client
}

func NewUserRepository(client *backend.Client) *UserRepository {
	return &UserRepository{client: client}
}

// GetByID fetches a user record, nil when it does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.client.GetOne(ctx, CollectionUsers, id, backend.Query{}, &user)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}
