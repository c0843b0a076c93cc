package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/internal/apierror"
	"github.com/leshachaplin/eventreporter/internal/storage"
)

type InstallResult struct {
	ID            string `json:"id"`
	UserInstallID string `json:"user_install_id"`
	Platform      string `json:"platform"`
	SessionID     string `json:"session_id,omitempty"`
	Retention     bool   `json:"retention"`
	Sessions      int    `json:"sessions"`
}

// RecordInstall creates an install record the first time a user install id
// is seen for the title. Later submissions count as retention events.
func (s *Service) RecordInstall(ctx context.Context, titleID string, install domain.Install) (InstallResult, error) {
	if err := domain.Validate(install); err != nil {
		return InstallResult{}, apierror.NewAPIError("invalid install", http.StatusBadRequest).
			WithDetail("reason", err.Error())
	}

	now := s.now()
	rec, created, err := s.storage.UpsertInstall(ctx, storage.InstallRecord{
		ID:            s.newID(),
		TitleID:       titleID,
		UserInstallID: install.UserInstallID,
		Platform:      install.Platform,
		LastSessionID: install.SessionID,
		Fingerprint:   install.Fingerprint,
		CreatedAt:     now,
		LastSeen:      now,
	})
	if err != nil {
		return InstallResult{}, fmt.Errorf("upsert install: %w", err)
	}

	s.logger.Debug().
		Str("title", titleID).
		Str("install", rec.ID).
		Bool("retention", !created).
		Bool("fingerprint", install.Fingerprint != nil).
		Msg("install recorded")

	return InstallResult{
		ID:            rec.ID,
		UserInstallID: rec.UserInstallID,
		Platform:      rec.Platform,
		SessionID:     install.SessionID,
		Retention:     !created,
		Sessions:      rec.Sessions,
	}, nil
}
