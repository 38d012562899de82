package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

const (
	summaryKey = "admin:summary"
	// versionTTL outlives any in-flight cache fill.
	versionTTL = 24 * time.Hour
)

// setIfVersion stores ARGV[2] under KEYS[1] only while KEYS[2] still holds ARGV[1].
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// WalletCacheRepository caches wallets and the admin summary in Redis.
type WalletCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached values
}

// NewWalletCacheRepository creates a new repository instance with the given TTL.
func NewWalletCacheRepository(client *redis.Client, expiration time.Duration) *WalletCacheRepository {
	return &WalletCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func walletKey(userID uuid.UUID) string {
	return fmt.Sprintf("wallet:user:%s", userID)
}

// GetWallet returns the cached wallet of the user or ErrCacheMiss.
func (r *WalletCacheRepository) GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	var wallet models.WalletDB
	if err := r.get(ctx, walletKey(userID), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func walletVersionKey(userID uuid.UUID) string {
	return fmt.Sprintf("wallet:version:%s", userID)
}

// WalletVersion returns the invalidation counter of the user's wallet. Zero if never invalidated.
func (r *WalletCacheRepository) WalletVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	v, err := r.client.Get(ctx, walletVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetWalletIfVersion caches the wallet only if no invalidation happened since
// version was read. It reports whether the wallet was stored.
func (r *WalletCacheRepository) SetWalletIfVersion(ctx context.Context, wallet *models.WalletDB, version int64) (bool, error) {
	b, err := json.Marshal(wallet)
	if err != nil {
		return false, err
	}
	key := walletKey(wallet.UserID)
	stored, err := setIfVersion.Run(ctx, r.client,
		[]string{key, walletVersionKey(wallet.UserID)},
		strconv.FormatInt(version, 10), b, r.exp.Milliseconds(),
	).Int()
	logger.Log.Debugw("cache set if version", "key", key, "version", version, "stored", stored == 1, "error", err)
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// DeleteWallet drops the cached wallet of the user and bumps its version so
// fills that loaded the wallet before this call are discarded.
func (r *WalletCacheRepository) DeleteWallet(ctx context.Context, userID uuid.UUID) error {
	key, versionKey := walletKey(userID), walletVersionKey(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, key)
		return nil
	})
	logger.Log.Debugw("cache delete", "key", key, "error", err)
	return err
}

// GetSummary returns the cached admin summary or ErrCacheMiss.
func (r *WalletCacheRepository) GetSummary(ctx context.Context) (*models.Summary, error) {
	var summary models.Summary
	if err := r.get(ctx, summaryKey, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetSummary caches the admin summary.
func (r *WalletCacheRepository) SetSummary(ctx context.Context, summary *models.Summary) error {
	return r.set(ctx, summaryKey, summary)
}

func (r *WalletCacheRepository) get(ctx context.Context, key string, dest any) error {
	val, err := r.client.Get(ctx, key).Bytes()
	logger.Log.Debugw("cache get", "key", key, "hit", err == nil, "error", err)
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (r *WalletCacheRepository) set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, b, r.exp).Err()
	logger.Log.Debugw("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}
