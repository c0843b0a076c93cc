package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/eventreporter/internal/storage"
)

type Storage interface {
	UpsertInstall(ctx context.Context, rec storage.InstallRecord) (storage.InstallRecord, bool, error)
	GetInstall(ctx context.Context, titleID, id string) (storage.InstallRecord, error)
	AddPurchase(ctx context.Context, rec storage.PurchaseRecord) error
}

// Service is the sandbox's stand-in for the analytics backend.
type Service struct {
	storage Storage
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

func New(storage Storage, logger zerolog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}
