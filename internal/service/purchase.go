package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/internal/apierror"
	"github.com/leshachaplin/eventreporter/internal/storage"
)

type PurchaseResult struct {
	ID            string  `json:"id"`
	GameInstallID string  `json:"game_install_id"`
	Amount        float64 `json:"purchase_amount"`
	Currency      string  `json:"currency"`
	Quantity      int     `json:"quantity"`
}

func (s *Service) RecordPurchase(ctx context.Context, titleID string, purchase domain.Purchase) (PurchaseResult, error) {
	if err := domain.Validate(purchase); err != nil {
		return PurchaseResult{}, apierror.NewAPIError("invalid purchase", http.StatusBadRequest).
			WithDetail("reason", err.Error())
	}
	purchase = purchase.WithDefaults()

	if _, err := s.storage.GetInstall(ctx, titleID, purchase.GameInstallID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return PurchaseResult{}, apierror.NewAPIError("install record not found", http.StatusNotFound).
				WithDetail("game_install_id", purchase.GameInstallID)
		}
		return PurchaseResult{}, fmt.Errorf("get install: %w", err)
	}

	rec := storage.PurchaseRecord{
		ID:        s.newID(),
		InstallID: purchase.GameInstallID,
		Purchase:  purchase,
		CreatedAt: s.now(),
	}
	if err := s.storage.AddPurchase(ctx, rec); err != nil {
		return PurchaseResult{}, fmt.Errorf("add purchase: %w", err)
	}

	s.logger.Debug().
		Str("title", titleID).
		Str("install", purchase.GameInstallID).
		Str("sku", purchase.ItemSKU).
		Msg("purchase recorded")

	return PurchaseResult{
		ID:            rec.ID,
		GameInstallID: purchase.GameInstallID,
		Amount:        purchase.Amount,
		Currency:      purchase.Currency,
		Quantity:      purchase.Quantity,
	}, nil
}
