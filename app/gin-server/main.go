package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/config"
	"github.com/yoockh/resumecraft/internal/api/handlers"
	"github.com/yoockh/resumecraft/internal/api/middleware"
	"github.com/yoockh/resumecraft/internal/api/routes"
	"github.com/yoockh/resumecraft/internal/auth"
	"github.com/yoockh/resumecraft/internal/cache"
	"github.com/yoockh/resumecraft/internal/logger"
	"github.com/yoockh/resumecraft/internal/mailer"
	"github.com/yoockh/resumecraft/internal/pdf"
	"github.com/yoockh/resumecraft/internal/providers/llm"
	"github.com/yoockh/resumecraft/internal/repositories"
	"github.com/yoockh/resumecraft/internal/repositories/memory"
	mongorepo "github.com/yoockh/resumecraft/internal/repositories/mongo"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/scoring"
	"github.com/yoockh/resumecraft/internal/services"
	"github.com/yoockh/resumecraft/internal/storage"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		// release in reverse order of acquisition
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// resumes: MongoDB, or process memory for local runs
	var resumes repositories.ResumeRepository
	if cfg.MongoURI != "" {
		client, err := config.NewMongo(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("MongoDB init error")
		}
		closers = append(closers, func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(sctx)
		})
		db := client.Database(cfg.MongoDB)
		if err := config.EnsureMongoIndexes(ctx, db); err != nil {
			log.WithError(err).Fatal("MongoDB index error")
		}
		resumes = mongorepo.NewResumeRepo(db)
		log.Info("MongoDB connected")
	} else {
		resumes = memory.NewResumeRepo()
		log.Warn("MONGO_URI not set; resumes are kept in memory")
	}

	// users and feedback: PostgreSQL, or process memory for local runs
	var (
		users    pgrepo.UserRepository
		feedback pgrepo.FeedbackRepository
	)
	if cfg.PostgresURI != "" {
		db, err := config.NewPostgres(cfg)
		if err != nil {
			log.WithError(err).Fatal("PostgreSQL init error")
		}
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
		users = pgrepo.NewUserRepo(db)
		feedback = pgrepo.NewFeedbackRepo(db)
		log.Info("PostgreSQL connected")
	} else {
		users = memory.NewUserRepo()
		feedback = memory.NewFeedbackRepo()
		log.Warn("POSTGRES_URI not set; users and feedback are kept in memory")
	}

	var kv cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedis(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		closers = append(closers, func() { _ = rdb.Close() })
		kv = cache.NewRedisCache(rdb)
		log.Info("Redis connected")
	} else {
		kv = cache.NewMemoryCache()
		log.Warn("REDIS_ADDR not set; using in-process cache")
	}

	var ai llm.Provider
	if cfg.GCPProject != "" {
		gemini, err := llm.NewVertexGemini(ctx, cfg.GCPProject, cfg.GCPLocation, cfg.GeminiModel)
		if err != nil {
			log.WithError(err).Fatal("Vertex AI init error")
		}
		closers = append(closers, func() { _ = gemini.Close() })
		ai = gemini
	} else {
		log.Warn("GCP_PROJECT_ID not set; AI features are unavailable")
	}

	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.GCSBucket)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		closers = append(closers, func() { _ = gcs.Close() })
		uploader = gcs
	}

	var provider auth.IdentityProvider
	if cfg.GoogleClientID != "" {
		provider = auth.NewGoogleVerifier(cfg.GoogleClientID)
	}

	exporter := pdf.NewChromeExporter(pdf.Options{ChromePath: cfg.ChromePath, Timeout: cfg.PDFTimeout}, log)
	if err := exporter.Start(context.Background()); err != nil {
		// the API still serves everything except pdf downloads
		log.WithError(err).Error("chrome failed to start; pdf export disabled")
	}
	closers = append(closers, func() { _ = exporter.Close() })

	scorer := scoring.NewService(ai, log)
	authSvc := services.NewAuthService(users, auth.NewJWT(cfg.JWTSecret, cfg.JWTTTL), provider, kv,
		mailer.NewLogMailer(log), services.AuthOptions{
			ResetTokenTTL: cfg.ResetTokenTTL,
			FrontendURL:   cfg.FrontendURL,
		}, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.MaxMultipartMemory = 12 << 20

	routes.RegisterRoutes(r, routes.Deps{
		Authenticator: authSvc,
		Auth:          handlers.NewAuthHandler(authSvc),
		Resume:        handlers.NewResumeHandler(services.NewResumeService(resumes, users, scorer, exporter, log)),
		AI:            handlers.NewAIHandler(services.NewAssistService(scorer, uploader, log)),
		Feedback:      handlers.NewFeedbackHandler(services.NewFeedbackService(feedback)),
		Admin:         handlers.NewAdminHandler(services.NewAdminService(users, resumes, feedback, kv, log)),
		WS:            handlers.NewWSHandler([]string{cfg.FrontendURL}, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	log.WithFields(logrus.Fields{"closers": len(closers)}).Info("releasing resources")
}
