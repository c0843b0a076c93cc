package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/internal/apierror"
	"github.com/leshachaplin/eventreporter/internal/storage/memory"
)

func newTestService() *Service {
	s := New(memory.New(), zerolog.Nop())
	var seq int
	s.newID = func() string {
		seq++
		return "id-" + strconv.Itoa(seq)
	}
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func requireAPIError(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr apierror.Error
	require.True(t, errors.As(err, &apiErr), "expected apierror, got %v", err)
	require.Equal(t, status, apiErr.StatusCode())
}

func TestService_RecordInstall(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	first, err := s.RecordInstall(ctx, "title1", domain.Install{UserInstallID: "abc123", Platform: "android"})
	require.NoError(t, err)
	require.Equal(t, InstallResult{ID: "id-1", UserInstallID: "abc123", Platform: "android", Sessions: 1}, first)

	second, err := s.RecordInstall(ctx, "title1", domain.Install{UserInstallID: "abc123", Platform: "android", SessionID: "sess99"})
	require.NoError(t, err)
	require.True(t, second.Retention)
	require.Equal(t, "id-1", second.ID)
	require.Equal(t, "sess99", second.SessionID)
	require.Equal(t, 2, second.Sessions)

	_, err = s.RecordInstall(ctx, "title1", domain.Install{UserInstallID: "abc123"})
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestService_RecordPurchase(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	install, err := s.RecordInstall(ctx, "title1", domain.Install{UserInstallID: "abc123", Platform: "ios"})
	require.NoError(t, err)

	purchase := domain.Purchase{
		GameInstallID: install.ID,
		Amount:        4.99,
		Currency:      "USD",
		ItemSKU:       "sku1",
		ItemName:      "Sword",
	}

	res, err := s.RecordPurchase(ctx, "title1", purchase)
	require.NoError(t, err)
	require.Equal(t, 1, res.Quantity)
	require.Equal(t, install.ID, res.GameInstallID)

	_, err = s.RecordPurchase(ctx, "title2", purchase)
	requireAPIError(t, err, http.StatusNotFound)

	purchase.ItemName = ""
	_, err = s.RecordPurchase(ctx, "title1", purchase)
	requireAPIError(t, err, http.StatusBadRequest)
}
