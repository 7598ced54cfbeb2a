package ratelimit

import "context"

// Limiter решает, можно ли пропустить еще один запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
