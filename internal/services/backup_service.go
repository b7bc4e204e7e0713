package services

import (
	"context"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/store"
)

// BackupService handles snapshot and restore of the whole collection.
type BackupService interface {
	Create(ctx context.Context) (string, error)
	List(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, name string) error
	RestoreLatest(ctx context.Context) error
}

type backupService struct {
	store *store.Store
}

// NewBackupService creates a new BackupService.
func NewBackupService(st *store.Store) BackupService {
	return &backupService{store: st}
}

func (s *backupService) Create(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)
	name, err := s.store.CreateBackup()
	if err != nil {
		log.Error("backup failed: %v", err)
		return "", errors.NewIOError("create backup", err)
	}
	log.Info("backup created: %s", name)
	return name, nil
}

func (s *backupService) List(ctx context.Context) ([]string, error) {
	names, err := s.store.ListBackups()
	if err != nil {
		return nil, errors.NewIOError("list backups", err)
	}
	return names, nil
}

func (s *backupService) Restore(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)
	if name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if err := s.store.Restore(name); err != nil {
		log.Error("restore failed: %v", err)
		return errors.NewIOError("restore backup", err)
	}
	log.Info("restored from backup: %s", name)
	return nil
}

func (s *backupService) RestoreLatest(ctx context.Context) error {
	log := logger.FromContext(ctx)
	names, err := s.store.ListBackups()
	if err != nil {
		return errors.NewIOError("list backups", err)
	}
	if len(names) == 0 {
		return errors.NewNotFoundError("backup", "latest")
	}
	if err := s.store.Restore(names[0]); err != nil {
		log.Error("restore failed: %v", err)
		return errors.NewIOError("restore backup", err)
	}
	log.Info("restored from latest backup: %s", names[0])
	return nil
}
