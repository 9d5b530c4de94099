package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tablebook/tablebook/internal/client/models"
	"github.com/tablebook/tablebook/internal/common"
	"github.com/tablebook/tablebook/internal/cryptox"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := OpenDatabase(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(db, common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)
	return store
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store := setupStore(t)

	creds, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, creds)
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	in := &Credentials{
		Token: "T1",
		User:  &models.User{ID: 1, Name: "A", Email: "a@b.com", Role: models.RoleCustomer},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", out.Token)
	require.Equal(t, in.User, out.User)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Credentials{Token: "T1", User: &models.User{ID: 1}}))
	require.NoError(t, store.Save(ctx, &Credentials{Token: "T2", User: &models.User{ID: 2}}))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", out.Token)
	require.Equal(t, int64(2), out.User.ID)
}

func TestSQLiteStore_ClearRemovesPair(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Credentials{Token: "T1", User: &models.User{ID: 1}}))
	require.NoError(t, store.Clear(ctx))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, out)

	// Clearing again is a no-op.
	require.NoError(t, store.Clear(ctx))
}

func TestSQLiteStore_RejectsEmptySnapshot(t *testing.T) {
	store := setupStore(t)
	require.Error(t, store.Save(context.Background(), nil))
	require.Error(t, store.Save(context.Background(), &Credentials{Token: ""}))
}

func TestSQLiteStore_WrongDeviceKeyFailsLoad(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDatabase(ctx, "file:wrongkey?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s1, err := NewSQLiteStore(db, common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, &Credentials{Token: "T1", User: &models.User{ID: 1}}))

	s2, err := NewSQLiteStore(db, common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)
	_, err = s2.Load(ctx)
	require.Error(t, err)
}

func TestNewSQLiteStore_RejectsBadKey(t *testing.T) {
	db, err := OpenDatabase(context.Background(), "file:badkey?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = NewSQLiteStore(db, []byte("short"))
	require.ErrorIs(t, err, cryptox.ErrInvalidKey)
}
