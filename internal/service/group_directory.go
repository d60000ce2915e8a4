package service

import (
	"context"
	"fmt"

	"health-booking-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const groupKeyPrefix = "groups:"

// GroupDirectory records role-group membership after user confirmation.
// Assignment is best-effort: the caller logs failures and never blocks
// the confirmation flow on them.
type GroupDirectory struct {
	client *redis.Client
}

func NewGroupDirectory(client *redis.Client) *GroupDirectory {
	return &GroupDirectory{client: client}
}

func (d *GroupDirectory) AddToGroup(ctx context.Context, role entity.Role, email string) error {
	key := groupKeyPrefix + string(role)
	if err := d.client.SAdd(ctx, key, email).Err(); err != nil {
		return fmt.Errorf("failed to add %s to group %s: %w", email, role, err)
	}
	return nil
}
