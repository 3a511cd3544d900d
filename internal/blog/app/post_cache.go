package app

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/cache"
	"bloghub/pkg/logger"
)

// Ключи кэша постов.
const (
	CacheKeyPostPrefix = "blog:post:"
	CacheKeyAllPosts   = "blog:posts:all"
)

const (
	msgCacheReadFailed       = "post cache read failed"
	msgCacheWriteFailed      = "post cache write failed"
	msgCacheInvalidateFailed = "post cache invalidation failed"
	msgCacheDecodeFailed     = "post cache entry is corrupt"
	msgCacheHit              = "post cache hit"
	msgCacheWriteRaced       = "post cache write raced with invalidation"
)

// PostCacheKey возвращает ключ кэша для поста.
func PostCacheKey(id string) string {
	return CacheKeyPostPrefix + id
}

// postCache - кэш представлений постов. Ошибки кэша не прерывают запрос.
//
// Ключи, которые не удалось инвалидировать, остаются в pending: их чтение идет
// мимо кэша, а удаление повторяется при следующей инвалидации. Поколение
// увеличивается при каждой инвалидации, и значение, прочитанное из хранилища до
// нее, в кэш не записывается.
type postCache struct {
	cache cache.Cache
	ttl   time.Duration

	mu         sync.Mutex
	generation uint64
	pending    map[string]struct{}
}

func newPostCache(c cache.Cache, ttl time.Duration) *postCache {
	return &postCache{cache: c, ttl: ttl, pending: make(map[string]struct{})}
}

func (pc *postCache) enabled() bool {
	return pc != nil && pc.cache != nil
}

// snapshot возвращает текущее поколение. Вызывается перед чтением из хранилища.
func (pc *postCache) snapshot() uint64 {
	if !pc.enabled() {
		return 0
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.generation
}

func (pc *postCache) current(gen uint64) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.generation == gen
}

func (pc *postCache) isPending(key string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	_, ok := pc.pending[key]
	return ok
}

func (pc *postCache) settle(keys ...string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, key := range keys {
		delete(pc.pending, key)
	}
}

func (pc *postCache) load(ctx context.Context, key string, dst any) bool {
	if !pc.enabled() || pc.isPending(key) {
		return false
	}
	log := logger.Log(ctx).With(zap.String("key", key))

	raw, err := pc.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Warn(ctx, msgCacheDecodeFailed, zap.Error(err))
		pc.invalidate(ctx, key)
		return false
	}
	log.Debug(ctx, msgCacheHit)
	return true
}

// store записывает значение, прочитанное в поколении gen.
func (pc *postCache) store(ctx context.Context, key string, value any, gen uint64) {
	if !pc.enabled() || !pc.current(gen) {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheWriteFailed, zap.String("key", key), zap.Error(err))
		return
	}
	if err := pc.cache.Set(ctx, key, string(raw), pc.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheWriteFailed, zap.String("key", key), zap.Error(err))
		return
	}

	// Инвалидация между проверкой поколения и Set.
	if !pc.current(gen) {
		logger.Log(ctx).Debug(ctx, msgCacheWriteRaced, zap.String("key", key))
		pc.invalidate(ctx, key)
		return
	}
	pc.settle(key)
}

// invalidate удаляет keys и все ключи, не удаленные ранее.
func (pc *postCache) invalidate(ctx context.Context, keys ...string) {
	if !pc.enabled() {
		return
	}

	pc.mu.Lock()
	pc.generation++
	all := append([]string(nil), keys...)
	for _, key := range keys {
		pc.pending[key] = struct{}{}
	}
	retry := make([]string, 0, len(pc.pending))
	for key := range pc.pending {
		if !slices.Contains(keys, key) {
			retry = append(retry, key)
		}
	}
	pc.mu.Unlock()

	slices.Sort(retry)
	all = append(all, retry...)

	if err := pc.cache.Delete(ctx, all...); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheInvalidateFailed, zap.Strings("keys", all), zap.Error(err))
		return
	}
	pc.settle(all...)
}

func (pc *postCache) getPost(ctx context.Context, id string) (*entities.Post, bool) {
	var post entities.Post
	if !pc.load(ctx, PostCacheKey(id), &post) {
		return nil, false
	}
	return &post, true
}

func (pc *postCache) putPost(ctx context.Context, post *entities.Post, gen uint64) {
	pc.store(ctx, PostCacheKey(post.ID), post, gen)
}

func (pc *postCache) getAll(ctx context.Context) ([]entities.Post, bool) {
	var posts []entities.Post
	if !pc.load(ctx, CacheKeyAllPosts, &posts) {
		return nil, false
	}
	if posts == nil {
		posts = []entities.Post{}
	}
	return posts, true
}

func (pc *postCache) putAll(ctx context.Context, posts []entities.Post, gen uint64) {
	pc.store(ctx, CacheKeyAllPosts, posts, gen)
}
