package discussion

import (
	"errors"

	"forum_thread/internal/domain/discussion/handler"
	"forum_thread/internal/domain/discussion/repository"
	"forum_thread/internal/domain/discussion/service"
	"forum_thread/internal/pkg/auth"
	"forum_thread/internal/pkg/middleware"
	"forum_thread/internal/pkg/registry"
	"forum_thread/internal/pkg/revalidate"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DiscussionModule 话题、帖子与评论模块
type DiscussionModule struct{}

func init() {
	registry.Register(&DiscussionModule{})
}

func (m *DiscussionModule) Name() string {
	return "discussion"
}

func (m *DiscussionModule) Priority() int {
	return 10
}

func (m *DiscussionModule) Init(ctx *registry.ModuleContext) error {
	if ctx.DB == nil || ctx.Cache == nil || ctx.Config == nil || ctx.Logger == nil {
		return errors.New("discussion module requires db, cache, config and logger")
	}

	// 1. 依赖注入
	log := ctx.Logger.Named("discussion")
	repo := repository.NewDiscussionRepository(ctx.DB)
	revalidator := revalidate.NewPageRevalidator(ctx.Cache, log)
	commentService := service.NewCommentService(repo, auth.ContextResolver{}, revalidator, ctx.Config.Comment.MaxLength, log)
	discussionService := service.NewDiscussionService(repo, ctx.Cache, ctx.Config.Cache.PageTTL, log)
	h := handler.NewDiscussionHandler(discussionService, commentService)

	limiter := middleware.NewIPRateLimiter(rate.Limit(ctx.Config.Comment.RateLimit), ctx.Config.Comment.RateBurst)

	// 2. 路由注册
	setupRoutes(ctx.Router, h, limiter)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.DiscussionHandler, limiter *middleware.IPRateLimiter) {
	r.GET("/topics", h.GetTopics)
	r.GET("/topics/:slug/posts/:postId", h.GetPostPage)

	posts := r.Group("/posts")
	{
		posts.GET("/:postId/comments", h.GetComments)
		// 是否登录由评论服务判断，返回表单状态而不是直接 401
		posts.POST("/:postId/comments", middleware.RateLimitMiddleware(limiter), h.CreateComment)
		posts.POST("", middleware.AuthMiddleware(), h.PublishPost)
	}
}
