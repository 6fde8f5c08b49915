package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/db"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCartRepository(t *testing.T, ttl time.Duration) (CartRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCartRepository(client, ttl), mr
}

func setupGormCartRepository(t *testing.T) *GormCartRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewGormCartRepository(testDB)
}

func TestRedisCartRepository_SaveAndLoad(t *testing.T) {
	repo, mr := setupRedisCartRepository(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[{"id":"a"}]`))

	payload, err := repo.Load(ctx, "norsCart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, payload)
	assert.Equal(t, time.Hour, mr.TTL("norsCart:s1"))
}

func TestRedisCartRepository_SaveRefreshesTTL(t *testing.T) {
	repo, mr := setupRedisCartRepository(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[]`))
	mr.FastForward(50 * time.Minute)
	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[]`))

	assert.Equal(t, time.Hour, mr.TTL("norsCart:s1"))
}

func TestRedisCartRepository_Expires(t *testing.T) {
	repo, mr := setupRedisCartRepository(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[]`))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Load(ctx, "norsCart:s1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisCartRepository_LoadMissing(t *testing.T) {
	repo, _ := setupRedisCartRepository(t, 0)

	_, err := repo.Load(context.Background(), "norsCart:none")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisCartRepository_Delete(t *testing.T) {
	repo, mr := setupRedisCartRepository(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[]`))
	require.NoError(t, repo.Delete(ctx, "norsCart:s1"))
	assert.False(t, mr.Exists("norsCart:s1"))
}

func TestRedisCartRepository_ServerDown(t *testing.T) {
	repo, mr := setupRedisCartRepository(t, 0)
	mr.Close()

	_, err := repo.Load(context.Background(), "norsCart:s1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}

func TestGormCartRepository_UpsertAndLoad(t *testing.T) {
	repo := setupGormCartRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[1]`))
	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[2]`))

	payload, err := repo.Load(ctx, "norsCart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, payload)

	var count int64
	require.NoError(t, repo.db.Model(&model.CartSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormCartRepository_LoadMissing(t *testing.T) {
	repo := setupGormCartRepository(t)

	_, err := repo.Load(context.Background(), "norsCart:none")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestGormCartRepository_Delete(t *testing.T) {
	repo := setupGormCartRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "norsCart:s1", `[]`))
	require.NoError(t, repo.Delete(ctx, "norsCart:s1"))

	_, err := repo.Load(ctx, "norsCart:s1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestGormCartRepository_DeleteStaleSnapshots(t *testing.T) {
	repo := setupGormCartRepository(t)
	ctx := context.Background()

	old := model.CartSnapshot{CartKey: "norsCart:old", Payload: "[]", UpdatedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, repo.db.Create(&old).Error)
	require.NoError(t, repo.Save(ctx, "norsCart:fresh", "[]"))

	deleted, err := repo.DeleteStaleSnapshots(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.Load(ctx, "norsCart:old")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = repo.Load(ctx, "norsCart:fresh")
	assert.NoError(t, err)
}
