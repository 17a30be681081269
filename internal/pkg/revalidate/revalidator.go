package revalidate

import (
	"context"
	"time"

	"forum_thread/internal/pkg/paths"
	"forum_thread/pkg/cache"
	"forum_thread/pkg/metrics"

	"go.uber.org/zap"
)

// Revalidator 使某个页面路径的缓存失效，下次访问时重新渲染
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

// revisionTTL 只需长于一次页面构建
const revisionTTL = 10 * time.Minute

// PageRevalidator 基于缓存服务的实现
type PageRevalidator struct {
	cache cache.CacheService
	log   *zap.Logger
}

func NewPageRevalidator(c cache.CacheService, log *zap.Logger) *PageRevalidator {
	return &PageRevalidator{cache: c, log: log}
}

// Revalidate 更新修订号后删除页面缓存
// 构建中的页面发现修订号变化后不再回写缓存
// 失败只记录日志，页面会在 TTL 到期后自然刷新
func (r *PageRevalidator) Revalidate(ctx context.Context, path string) {
	if err := r.cache.Set(ctx, paths.PageRevisionKey(path), time.Now().UnixNano(), revisionTTL); err != nil {
		r.log.Warn("bump page revision failed", zap.String("path", path), zap.Error(err))
	}
	if err := r.cache.Delete(ctx, paths.PageKey(path)); err != nil {
		metrics.PageRevalidationsTotal.WithLabelValues("error").Inc()
		r.log.Warn("page revalidation failed", zap.String("path", path), zap.Error(err))
		return
	}
	metrics.PageRevalidationsTotal.WithLabelValues("ok").Inc()
	r.log.Debug("page revalidated", zap.String("path", path))
}
