package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	clubimporter "github.com/fbraem/kwai/internal/domains/club/adapters/importer"
	clubhandlers "github.com/fbraem/kwai/internal/domains/club/adapters/http/handlers"
	clubobs "github.com/fbraem/kwai/internal/domains/club/adapters/observability"
	clubsql "github.com/fbraem/kwai/internal/domains/club/adapters/persistence/sqlstore"
	clubapp "github.com/fbraem/kwai/internal/domains/club/application"
	clubports "github.com/fbraem/kwai/internal/domains/club/ports"
	identityevents "github.com/fbraem/kwai/internal/domains/identity/adapters/events"
	identityhandlers "github.com/fbraem/kwai/internal/domains/identity/adapters/http/handlers"
	identityobs "github.com/fbraem/kwai/internal/domains/identity/adapters/observability"
	identitysql "github.com/fbraem/kwai/internal/domains/identity/adapters/persistence/sqlstore"
	identityapp "github.com/fbraem/kwai/internal/domains/identity/application"
	identityports "github.com/fbraem/kwai/internal/domains/identity/ports"
	portalhandlers "github.com/fbraem/kwai/internal/domains/portal/adapters/http/handlers"
	portalobs "github.com/fbraem/kwai/internal/domains/portal/adapters/observability"
	portalsql "github.com/fbraem/kwai/internal/domains/portal/adapters/persistence/sqlstore"
	portalapp "github.com/fbraem/kwai/internal/domains/portal/application"
	teamshandlers "github.com/fbraem/kwai/internal/domains/teams/adapters/http/handlers"
	teamsobs "github.com/fbraem/kwai/internal/domains/teams/adapters/observability"
	teamssql "github.com/fbraem/kwai/internal/domains/teams/adapters/persistence/sqlstore"
	teamsapp "github.com/fbraem/kwai/internal/domains/teams/application"
	traininghandlers "github.com/fbraem/kwai/internal/domains/training/adapters/http/handlers"
	trainingobs "github.com/fbraem/kwai/internal/domains/training/adapters/observability"
	trainingsql "github.com/fbraem/kwai/internal/domains/training/adapters/persistence/sqlstore"
	trainingapp "github.com/fbraem/kwai/internal/domains/training/application"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/mail"
	"github.com/fbraem/kwai/internal/platform/migrations"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/platform/postgres"
	"github.com/fbraem/kwai/internal/platform/security"
	"github.com/fbraem/kwai/internal/platform/sqlite"
	"github.com/fbraem/kwai/internal/platform/storage"
)

// APIPrefix is the path all resources are served under.
const APIPrefix = "/api/v1"

// App is the assembled HTTP API.
type App struct {
	Router   *gin.Engine
	Identity identityports.Service
	closers  []func()
}

// Close releases the database and the Temporal client.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// NewApp connects the database, runs the migrations and registers the routes of
// every bounded context.
func NewApp(ctx context.Context, cfg Config, instruments *observability.Instruments) (*App, error) {
	logger := instruments.Logger
	app := &App{}

	db, closeDB, err := OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeDB)

	uploads, err := NewUploadStore(ctx, cfg.Files)
	if err != nil {
		app.Close()
		return nil, err
	}

	var temporalClient client.Client
	if cfg.Temporal.Events == "temporal" {
		temporalClient, err = ConnectTemporal(cfg.Temporal, instruments)
		if err != nil {
			logger.Warn("Temporal unavailable, identity mails are sent inline", slog.String("error", err.Error()))
		} else {
			app.closers = append(app.closers, temporalClient.Close)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
		}
	}

	identity, err := NewIdentityService(cfg, db, temporalClient, instruments)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Identity = identity

	codec, err := security.NewTokenCodec(cfg.Security.JWTSecret, cfg.Security.JWTRefreshSecret)
	if err != nil {
		app.Close()
		return nil, err
	}

	club := clubobs.Instrumented(newClubService(db, uploads), instruments)
	teams := teamsobs.Instrumented(
		teamsapp.NewService(teamssql.NewTeamRepository(db), teamssql.NewMemberRepository(db), database.NewUnitOfWork(db)),
		instruments,
	)
	training := trainingobs.Instrumented(
		trainingapp.NewService(
			trainingsql.NewTrainingRepository(db),
			trainingsql.NewTrainingDefinitionRepository(db),
			trainingsql.NewCoachRepository(db),
			trainingsql.NewTeamRepository(db),
			database.NewUnitOfWork(db),
		),
		instruments,
	)
	portal := portalobs.Instrumented(
		portalapp.NewService(
			portalsql.NewApplicationRepository(db),
			portalsql.NewNewsItemRepository(db),
			portalsql.NewPageRepository(db),
			portalsql.NewAuthorRepository(db),
			database.NewUnitOfWork(db),
		),
		instruments,
	)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(cfg.Observability.ServiceName))
	router.GET("/health", healthHandler(db))

	authenticator := identityhandlers.NewAuthenticator(identity, codec)
	v1 := router.Group(APIPrefix)
	identityhandlers.NewAuthHandler(identity, codec, identityhandlers.CookieOptions{
		Domain: cfg.Security.CookieDomain,
		Secure: cfg.Security.SecureCookies,
	}).Register(v1, authenticator.RequireLogin)
	clubhandlers.NewMembersHandler(club).Register(v1, authenticator.RequireLogin)
	teamshandlers.NewTeamsHandler(teams).Register(v1, authenticator.RequireLogin)
	traininghandlers.NewTrainingsHandler(training).Register(v1, authenticator.RequireLogin)
	portalhandlers.NewPortalHandler(portal).Register(v1, authenticator.RequireLogin, authenticator.Identify)

	app.Router = router
	return app, nil
}

func newClubService(db *database.Database, uploads clubports.UploadStore) *clubapp.Service {
	countries := clubsql.NewCountryRepository(db)
	return clubapp.NewService(
		clubsql.NewMemberRepository(db),
		clubsql.NewFileUploadRepository(db),
		clubimporter.NewFlemishImporter(countries),
		uploads,
		database.NewUnitOfWork(db, database.AlwaysCommit()),
	)
}

// NewIdentityService builds the instrumented identity service. Events are started as
// Temporal workflows when c is set, otherwise the mails are sent by the publishing process.
func NewIdentityService(cfg Config, db *database.Database, c client.Client, instruments *observability.Instruments) (identityports.Service, error) {
	templates, err := mail.LoadTemplates()
	if err != nil {
		return nil, err
	}
	var dispatcher *identityevents.Dispatcher
	var publisher identityports.EventPublisher
	if c != nil {
		publisher = identityevents.NewTemporalPublisher(c)
	} else {
		dispatcher = identityevents.NewDispatcher(instruments.Logger)
		publisher = dispatcher
	}
	service := identityobs.Instrumented(
		identityapp.NewService(
			identityapp.Repositories{
				Users:         identitysql.NewUserAccountRepository(db),
				AccessTokens:  identitysql.NewAccessTokenRepository(db),
				RefreshTokens: identitysql.NewRefreshTokenRepository(db),
				Invitations:   identitysql.NewUserInvitationRepository(db),
				Recoveries:    identitysql.NewUserRecoveryRepository(db),
				UserLogs:      identitysql.NewUserLogRepository(db),
			},
			publisher,
			NewMailer(cfg.Email, instruments.Logger),
			templates,
			database.NewUnitOfWork(db),
			identityapp.WithAccessTokenExpiry(cfg.Security.AccessTokenExpiry),
			identityapp.WithRefreshTokenExpiry(cfg.Security.RefreshTokenExpiry),
			identityapp.WithWebsite(identityapp.Website{
				URL:   cfg.Website.URL,
				Name:  cfg.Website.Name,
				Email: cfg.Website.Email,
			}),
		),
		instruments,
	)
	if dispatcher != nil {
		identityevents.SubscribeMail(dispatcher, service)
	}
	return service, nil
}

// NewMailer selects the SMTP mailer or the mailer that only logs.
func NewMailer(cfg EmailConfig, logger *slog.Logger) mail.Mailer {
	if cfg.Mailer == "smtp" {
		return mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
		})
	}
	return mail.NewLogMailer(logger)
}

// NewUploadStore selects S3 when a bucket is configured.
func NewUploadStore(ctx context.Context, cfg FilesConfig) (clubports.UploadStore, error) {
	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("configure s3 upload store: %w", err)
		}
		return store, nil
	}
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("configure upload directory: %w", err)
	}
	return store, nil
}

// OpenDatabase connects PostgreSQL, or the SQLite file when no DSN is set, and
// applies the migrations.
func OpenDatabase(ctx context.Context, cfg DatabaseConfig, logger *slog.Logger) (*database.Database, func(), error) {
	var (
		gdb  *gorm.DB
		name string
		err  error
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		name = "postgres"
		gdb, err = postgres.Connect(ctx, cfg.PostgresDSN)
	} else {
		name = "sqlite"
		logger.Warn("POSTGRES_DSN not set, using SQLite", slog.String("path", cfg.SQLitePath))
		gdb, err = sqlite.Connect(ctx, cfg.SQLitePath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", name, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = sqlDB.Close() }
	if err := migrations.Run(gdb); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate %s: %w", name, err)
	}
	logger.Info("database configured", slog.String("driver", name))
	return database.New(gdb, database.WithLogger(logger), database.WithName(name)), closeDB, nil
}

// ConnectTemporal dials the cluster with tracing and the process logger.
func ConnectTemporal(cfg TemporalConfig, instruments *observability.Instruments) (client.Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("temporal address not configured")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func healthHandler(db *database.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.Gorm().DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
