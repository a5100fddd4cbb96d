package workers

import (
	"context"
	"time"

	"nibash_backend/internal/auth"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/repositories"
)

const migrationBatchSize = 100

// PasswordMigrationWorker re-hashes legacy plaintext passwords in batches.
// Migration happens here, explicitly and logged, instead of silently inside
// the login path.
type PasswordMigrationWorker struct {
	userRepo repositories.UserRepository
}

func NewPasswordMigrationWorker(userRepo repositories.UserRepository) *PasswordMigrationWorker {
	return &PasswordMigrationWorker{userRepo: userRepo}
}

func (w *PasswordMigrationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *PasswordMigrationWorker) run(ctx context.Context) {
	// One batch shortly after boot, then a slow periodic retry for rows that
	// failed or appeared since.
	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("password migration worker stopped")
			return
		case <-timer.C:
			migrated, failed := w.migrateBatch()
			if migrated > 0 || failed > 0 {
				logger.Info("password migration batch finished",
					"migrated", migrated, "failed", failed)
			}
			if migrated == migrationBatchSize {
				// More rows likely remain, go again soon.
				timer.Reset(10 * time.Second)
			} else {
				timer.Reset(6 * time.Hour)
			}
		}
	}
}

func (w *PasswordMigrationWorker) migrateBatch() (migrated, failed int) {
	users, err := w.userRepo.FindWithPlaintextPasswords(migrationBatchSize)
	if err != nil {
		logger.Error("failed to list users pending password migration", "error", err)
		return 0, 0
	}

	for _, user := range users {
		if auth.IsHashed(user.Password) {
			continue
		}
		hashed, err := auth.HashPassword(user.Password)
		if err != nil {
			logger.Error("failed to hash legacy password", "user_id", user.ID, "error", err)
			failed++
			continue
		}
		if err := w.userRepo.UpdatePassword(user.ID, hashed); err != nil {
			logger.Error("failed to store migrated password", "user_id", user.ID, "error", err)
			failed++
			continue
		}
		migrated++
	}

	return migrated, failed
}
