// Package ratelimiter provides a token bucket limiter and an HTTP middleware
// built on it. The application uses it to throttle login attempts per client
// address.
//
// A bucket starts full with Capacity tokens. Every request takes one token and
// RefillRate tokens are added per RefillInterval up to Capacity. A request
// that finds the bucket empty is rejected without consuming anything.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP, respond)).
//		Post("/login", login)
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset headers, plus Retry-After when rejected. State lives in
// process memory, so limits are per instance.
package ratelimiter
