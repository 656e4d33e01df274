package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const BackupJobName = "library_backup"

// Backupper snapshots the theme library and prunes old snapshots.
type Backupper interface {
	Backup(ctx context.Context) (string, error)
	PruneBackups(ctx context.Context, keep int) (int, error)
}

// RegisterBackupJob schedules periodic library backups, keeping the newest
// retention snapshots.
func (s *Service) RegisterBackupJob(lib Backupper, cronExpr string, retention int, observe func(error)) error {
	if lib == nil {
		return fmt.Errorf("backup job requires a library")
	}
	if retention < 1 {
		return fmt.Errorf("backup retention must be at least 1")
	}

	_, err := s.AddJob(BackupJobName, cronExpr, func(ctx context.Context) error {
		jobLogger := log.Ctx(ctx).With().Str("component", "library_backup_job").Logger()

		key, err := lib.Backup(ctx)
		if observe != nil {
			observe(err)
		}
		if err != nil {
			return fmt.Errorf("backup library: %w", err)
		}

		pruned, err := lib.PruneBackups(ctx, retention)
		if err != nil {
			return fmt.Errorf("prune backups: %w", err)
		}
		jobLogger.Info().Str("backup_key", key).Int("pruned", pruned).Msg("Library backup written")
		return nil
	})
	return err
}
