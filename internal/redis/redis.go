package redis

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// Init connects the shared client. Callers that never call Init run
// without a cache; Client returns nil in that case and cache layers
// treat it as a miss.
func Init(address, username, password string) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}

func Client() *redis.Client { return rdb }

// Key joins parts with ":" into a namespaced cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
