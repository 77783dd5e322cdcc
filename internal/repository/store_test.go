package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
)

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(newTestDB(t))
	repo := repository.NewVenueRepo(store.DB())
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.CreateTx(ctx, tx, &model.Venue{Name: "never committed"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_WithTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(newTestDB(t))
	repo := repository.NewVenueRepo(store.DB())

	assert.Panics(t, func() {
		_ = store.WithTx(ctx, func(tx *sqlx.Tx) error {
			_ = repo.CreateTx(ctx, tx, &model.Venue{Name: "never committed"})
			panic("boom")
		})
	})

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_DriverErrorsAreStorageErrors(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(newTestDB(t))
	repo := repository.NewVenueRepo(store.DB())
	require.NoError(t, store.DB().Close())

	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, repository.ErrStorage)

	err = store.WithTx(ctx, func(*sqlx.Tx) error { return nil })
	assert.ErrorIs(t, err, repository.ErrStorage)
}
