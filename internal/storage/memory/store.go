package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/leshachaplin/eventreporter/internal/storage"
)

type installKey struct {
	titleID       string
	userInstallID string
}

// Store keeps install and purchase records for the sandbox server.
type Store struct {
	mu        sync.RWMutex
	installs  map[installKey]*storage.InstallRecord
	byID      map[string]*storage.InstallRecord
	purchases map[string][]storage.PurchaseRecord
}

func New() *Store {
	return &Store{
		installs:  make(map[installKey]*storage.InstallRecord),
		byID:      make(map[string]*storage.InstallRecord),
		purchases: make(map[string][]storage.PurchaseRecord),
	}
}

// UpsertInstall creates the record when the user install id is unseen for the
// title, otherwise bumps its session count. The returned bool reports creation.
func (s *Store) UpsertInstall(_ context.Context, rec storage.InstallRecord) (storage.InstallRecord, bool, error) {
	if rec.ID == "" || rec.TitleID == "" || rec.UserInstallID == "" {
		return storage.InstallRecord{}, false, errors.New("install record is incomplete")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := installKey{titleID: rec.TitleID, userInstallID: rec.UserInstallID}
	if existing, ok := s.installs[key]; ok {
		existing.Sessions++
		existing.LastSeen = rec.LastSeen
		if rec.LastSessionID != "" {
			existing.LastSessionID = rec.LastSessionID
		}
		return *existing, false, nil
	}

	created := rec
	created.Sessions = 1
	s.installs[key] = &created
	s.byID[created.ID] = &created
	return created, true, nil
}

func (s *Store) GetInstall(_ context.Context, titleID, id string) (storage.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok || rec.TitleID != titleID {
		return storage.InstallRecord{}, storage.ErrNotFound
	}
	return *rec, nil
}

func (s *Store) AddPurchase(_ context.Context, rec storage.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[rec.InstallID]; !ok {
		return storage.ErrNotFound
	}
	s.purchases[rec.InstallID] = append(s.purchases[rec.InstallID], rec)
	return nil
}

func (s *Store) Purchases(_ context.Context, installID string) ([]storage.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]storage.PurchaseRecord(nil), s.purchases[installID]...), nil
}
