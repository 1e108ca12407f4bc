package router

import (
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/handlers"
	"github.com/anonto42/travel-match/gateway/internal/middleware"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/notify"
	"github.com/anonto42/travel-match/gateway/internal/repositories"
	"github.com/anonto42/travel-match/gateway/internal/session"
	"github.com/anonto42/travel-match/gateway/internal/spot"
	"github.com/anonto42/travel-match/gateway/internal/validators"
	"github.com/anonto42/travel-match/gateway/internal/workspace"
	"github.com/anonto42/travel-match/gateway/pkg/config"
	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources. Nil stores fall back to
// in-process ones and a nil messaging client disables badge pushes.
type Dependencies struct {
	Config    *config.Config
	Postgres  *gorm.DB
	Mongo     *mongo.Client
	Messaging *messaging.Client
	IDs       *snowflake.Node
}

// SetupRoutes wires repositories, the workspace registry and every handler.
func SetupRoutes(e *echo.Echo, d Dependencies) (*workspace.Registry, error) {
	e.Validator = validators.NewValidator()

	var sessions session.Repository
	if d.Postgres != nil {
		if err := d.Postgres.AutoMigrate(&models.SessionRecord{}); err != nil {
			return nil, fmt.Errorf("auto migrate sessions: %w", err)
		}
		log.Info().Msg("PostgreSQL auto-migrations completed")
		sessions = repositories.NewPostgresSessionRepository(d.Postgres)
	} else {
		sessions = repositories.NewMemorySessionRepository()
	}

	var spotRepo repositories.SpotDisplayRepository
	if d.Mongo != nil {
		spotRepo = repositories.NewMongoSpotDisplayRepository(d.Mongo.Database(d.Config.MongoDatabase))
	} else {
		spotRepo = repositories.NewMemorySpotDisplayRepository()
	}
	spots := spot.NewCache(spotRepo)

	var notifier notify.Notifier = notify.Noop{}
	if d.Messaging != nil {
		notifier = notify.NewFCM(d.Messaging)
	}

	registry := workspace.NewRegistry(workspace.Deps{
		UpstreamBaseURL: d.Config.UpstreamBaseURL,
		HTTPClient:      apiclient.NewHTTPClient(d.Config.UpstreamTimeout),
		Sessions:        sessions,
		Notifier:        notifier,
		IDs:             d.IDs,
	}, d.Config.WorkspaceLimit, d.Config.WorkspaceTTL)

	Register(e, registry, spots)
	return registry, nil
}

// Register mounts the routes on e. Split out so tests can bring their own
// registry.
func Register(e *echo.Echo, registry middleware.Workspaces, spots *spot.Cache) {
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api", middleware.ClientSession(registry))
	protected := api.Group("", middleware.RequireAuth())

	handlers.NewAuthHandler().RegisterAuthRoutes(api)
	handlers.NewFeedHandler().RegisterFeedRoutes(api, protected)
	handlers.NewMessageHandler().RegisterMessageRoutes(protected)
	handlers.NewChatHandler(spots).RegisterChatRoutes(protected)
	handlers.NewProfileHandler().RegisterProfileRoutes(api, protected)
	handlers.NewContentHandler().RegisterContentRoutes(api, protected)
	handlers.NewTeamHandler().RegisterTeamRoutes(api)
	handlers.NewPlannerHandler().RegisterPlannerRoutes(api, protected)
	handlers.NewSpotHandler(spots).RegisterSpotRoutes(api)

	log.Debug().Int("routes", len(e.Routes())).Msg("All routes configured")
}
