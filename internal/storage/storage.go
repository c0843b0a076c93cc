package storage

import (
	"errors"
	"time"

	"github.com/leshachaplin/eventreporter/domain"
)

var ErrNotFound = errors.New("not found")

type InstallRecord struct {
	ID            string
	TitleID       string
	UserInstallID string
	Platform      string
	LastSessionID string
	Fingerprint   *domain.Fingerprint
	Sessions      int
	CreatedAt     time.Time
	LastSeen      time.Time
}

type PurchaseRecord struct {
	ID        string
	InstallID string
	Purchase  domain.Purchase
	CreatedAt time.Time
}
