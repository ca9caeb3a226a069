package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"northpole/wishhub/internal/model"
)

const (
	keySettings   = "wishhub:settings"
	keyWishPrefix = "wishhub:wishes:"
	keyIDPrefix   = "wishhub:nextid:"
)

// WishlistRepository persists per-user wish state and the settings
// singleton on a KVStore. Every read extends the entry's remaining
// lifetime so active data is never reclaimed; every write re-applies the
// full retention window.
type WishlistRepository interface {
	Settings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, s *model.Settings) error
	Wishes(ctx context.Context, user string) ([]model.Wish, error)
	SaveWishes(ctx context.Context, user string, wishes []model.Wish) error
	NextID(ctx context.Context, user string) (uint32, error)
	SaveNextID(ctx context.Context, user string, id uint32) error
}

type kvWishlistRepository struct {
	kv        KVStore
	retention time.Duration
	threshold time.Duration
}

func NewKVWishlistRepository(kv KVStore, retention, renewThreshold time.Duration) WishlistRepository {
	return &kvWishlistRepository{
		kv:        kv,
		retention: retention,
		threshold: renewThreshold,
	}
}

// Settings returns the stored singleton, or (nil, nil) before bootstrap.
func (r *kvWishlistRepository) Settings(ctx context.Context) (*model.Settings, error) {
	raw, err := r.kv.Get(ctx, keySettings)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var s model.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := r.kv.ExtendTTL(ctx, keySettings, r.threshold, r.retention); err != nil {
		return nil, fmt.Errorf("renew settings: %w", err)
	}
	return &s, nil
}

func (r *kvWishlistRepository) SaveSettings(ctx context.Context, s *model.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return r.kv.Set(ctx, keySettings, raw, r.retention)
}

// Wishes returns the user's list in insertion order, empty when the user
// has no entry.
func (r *kvWishlistRepository) Wishes(ctx context.Context, user string) ([]model.Wish, error) {
	key := keyWishPrefix + user
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get wishes: %w", err)
	}
	if raw == nil {
		return []model.Wish{}, nil
	}
	var wishes []model.Wish
	if err := json.Unmarshal(raw, &wishes); err != nil {
		return nil, fmt.Errorf("decode wishes: %w", err)
	}
	if err := r.kv.ExtendTTL(ctx, key, r.threshold, r.retention); err != nil {
		return nil, fmt.Errorf("renew wishes: %w", err)
	}
	return wishes, nil
}

func (r *kvWishlistRepository) SaveWishes(ctx context.Context, user string, wishes []model.Wish) error {
	raw, err := json.Marshal(wishes)
	if err != nil {
		return fmt.Errorf("encode wishes: %w", err)
	}
	return r.kv.Set(ctx, keyWishPrefix+user, raw, r.retention)
}

// NextID returns the user's counter, starting at 1 for a fresh user.
func (r *kvWishlistRepository) NextID(ctx context.Context, user string) (uint32, error) {
	key := keyIDPrefix + user
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get next id: %w", err)
	}
	if raw == nil {
		return 1, nil
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("decode next id: %w", err)
	}
	if err := r.kv.ExtendTTL(ctx, key, r.threshold, r.retention); err != nil {
		return 0, fmt.Errorf("renew next id: %w", err)
	}
	return uint32(id), nil
}

func (r *kvWishlistRepository) SaveNextID(ctx context.Context, user string, id uint32) error {
	raw := strconv.FormatUint(uint64(id), 10)
	return r.kv.Set(ctx, keyIDPrefix+user, []byte(raw), r.retention)
}
