package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jordanmartell/ideahub-backend/api/controllers"
	"github.com/jordanmartell/ideahub-backend/api/middleware"
	"github.com/jordanmartell/ideahub-backend/internal/actions"
	"github.com/jordanmartell/ideahub-backend/internal/challenges"
	"github.com/jordanmartell/ideahub-backend/internal/comments"
	"github.com/jordanmartell/ideahub-backend/internal/ideas"
	"github.com/jordanmartell/ideahub-backend/internal/notifications"
	"github.com/jordanmartell/ideahub-backend/pkg/config"
	"github.com/jordanmartell/ideahub-backend/pkg/db"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/jordanmartell/ideahub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	actionsService actions.Service,
	commentsService comments.Service,
	notificationsService notifications.Service,
	challengesService challenges.Service,
	ideasService ideas.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/user-actions", func(r chi.Router) {
		r.Post("/", controllers.UserActionToggle(actionsService, logg))
		r.Get("/counts", controllers.UserActionCounts(actionsService, logg))
	})

	r.Route("/api/v1/comments", func(r chi.Router) {
		r.Post("/", controllers.CommentCreate(commentsService, logg))
		r.Get("/", controllers.CommentList(commentsService, logg))
		r.Delete("/{commentId}", controllers.CommentDelete(commentsService, logg))
	})

	r.Route("/api/v1/notifications/user/{userId}", func(r chi.Router) {
		r.Get("/", controllers.NotificationsList(notificationsService, logg))
		r.Post("/mark-read", controllers.NotificationsMarkRead(notificationsService, logg))
		r.Get("/unread-count", controllers.NotificationsUnreadCount(notificationsService, logg))
	})

	r.Route("/api/v1/challenges", func(r chi.Router) {
		r.Post("/", controllers.ChallengeCreate(challengesService, logg))
		r.Get("/{challengeId}", controllers.ChallengeGet(challengesService, logg))
		r.Delete("/{challengeId}", controllers.ChallengeDelete(challengesService, logg))
	})

	r.Route("/api/v1/ideas", func(r chi.Router) {
		r.Post("/", controllers.IdeaCreate(ideasService, logg))
		r.Get("/{ideaId}", controllers.IdeaGet(ideasService, logg))
		r.Delete("/{ideaId}", controllers.IdeaDelete(ideasService, logg))
	})

	return r
}
