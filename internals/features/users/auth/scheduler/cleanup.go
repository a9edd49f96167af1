package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"teecha_backend/internals/configs"
	authRepo "teecha_backend/internals/features/users/auth/repository"
)

const DefaultCleanupSpec = "@hourly"

// Purger removes expired rows from a revocation store.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type Cleanup struct {
	Users   authRepo.UserRepository
	Purgers []Purger
	Now     func() time.Time
	Timeout time.Duration
}

// Run clears expired reset/refresh tokens and expired blacklist rows once.
func (j *Cleanup) Run(ctx context.Context) {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if j.Users != nil {
		n, err := j.Users.ClearExpiredTokens(ctx, now())
		if err != nil {
			log.Printf("[CLEANUP ERROR] clear user tokens: %v", err)
		} else if n > 0 {
			log.Printf("[CLEANUP] cleared expired tokens on %d users", n)
		}
	}
	for _, p := range j.Purgers {
		if p == nil {
			continue
		}
		n, err := p.PurgeExpired(ctx)
		if err != nil {
			log.Printf("[CLEANUP ERROR] purge blacklist: %v", err)
		} else if n > 0 {
			log.Printf("[CLEANUP] %d expired blacklist rows removed", n)
		}
	}
}

// StartCleanupScheduler registers the job on a new cron using CLEANUP_CRON and starts it.
func StartCleanupScheduler(job *Cleanup) (*cron.Cron, error) {
	spec := configs.GetEnv("CLEANUP_CRON", DefaultCleanupSpec)
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { job.Run(context.Background()) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] scheduler started (%s)", spec)
	return c, nil
}
