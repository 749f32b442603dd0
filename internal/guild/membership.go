package guild

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMembershipChecker reads the guild member sets the Discord gateway
// mirrors into Redis ("guild:<id>:members", one entry per user id).
type RedisMembershipChecker struct {
	client *redis.Client
}

func NewRedisMembershipChecker(client *redis.Client) *RedisMembershipChecker {
	return &RedisMembershipChecker{client: client}
}

func (c *RedisMembershipChecker) IsMember(ctx context.Context, guildID, discordUserID string) (bool, error) {
	key := fmt.Sprintf("guild:%s:members", guildID)
	ok, err := c.client.SIsMember(ctx, key, discordUserID).Result()
	if err != nil {
		return false, fmt.Errorf("guild member lookup %s: %w", guildID, err)
	}
	return ok, nil
}
