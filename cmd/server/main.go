// @title         jobmatch API
// @version       1.0
// @description   Resume skill-gap analysis service: extracts text from uploaded resumes, maps it onto a skill taxonomy, computes the gap against job profiles, recommends courses and relays chat prompts to an LLM provider.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	_ "github.com/artem13815/jobmatch/docs"

	// internal imports
	apihttp "github.com/artem13815/jobmatch/api/http"
	"github.com/artem13815/jobmatch/api/http/handlers"
	"github.com/artem13815/jobmatch/pkg/analysis"
	"github.com/artem13815/jobmatch/pkg/chat"
	"github.com/artem13815/jobmatch/pkg/config"
	"github.com/artem13815/jobmatch/pkg/courses"
	"github.com/artem13815/jobmatch/pkg/extract"
	"github.com/artem13815/jobmatch/pkg/health"
	"github.com/artem13815/jobmatch/pkg/health/checkers"
	"github.com/artem13815/jobmatch/pkg/jobs"
	"github.com/artem13815/jobmatch/pkg/llm"
	"github.com/artem13815/jobmatch/pkg/llm/gemini"
	"github.com/artem13815/jobmatch/pkg/llm/openrouter"
	"github.com/artem13815/jobmatch/pkg/logger"
	"github.com/artem13815/jobmatch/pkg/taxonomy"
	"github.com/artem13815/jobmatch/pkg/taxonomy/pgrepo"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Reference data: Postgres when configured, otherwise files/embedded defaults.
	var pool *pgxpool.Pool
	var refRepo *pgrepo.Repository
	if cfg.RefDataDatabaseURL != "" {
		pool, err = pgrepo.Connect(ctx, cfg.RefDataDatabaseURL)
		if err != nil {
			zlog.Fatal("postgres connect", zap.Error(err))
		}
		defer pool.Close()
		refRepo, err = pgrepo.New(ctx, pool)
		if err != nil {
			zlog.Fatal("init refdata repository", zap.Error(err))
		}
	}

	taxStore := taxonomy.NewStore(nil)
	catalogStore := courses.NewStore(nil)
	reload := func(ctx context.Context) error {
		tax, cat, err := loadRefData(ctx, cfg, refRepo)
		if err != nil {
			return err
		}
		taxStore.Swap(tax)
		catalogStore.Swap(cat)
		zlog.Info("reference data loaded",
			zap.Int("skills", tax.Len()),
			zap.Int("courseSkills", cat.Len()),
		)
		return nil
	}
	if err := reload(ctx); err != nil {
		zlog.Fatal("load reference data", zap.Error(err))
	}

	jobStore, err := jobs.NewStore(cfg.JobsPath)
	if err != nil {
		zlog.Fatal("open job store", zap.Error(err))
	}

	// Pipeline services
	extractor := extract.New(cfg.UploadMaxBytes, cfg.ExtractTimeout)
	analysisSvc := analysis.NewService(taxStore, catalogStore, cfg.MaxTextChars)

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		zlog.Fatal("init llm provider", zap.Error(err))
	}
	zlog.Info("llm provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", provider.Model()),
	)
	relay := chat.NewRelay(provider, zlog, cfg.ProviderTimeout, cfg.ChatMaxAttempts, cfg.ChatHistoryMax)

	// Health service: compose checkers
	healthCheckers := []health.Checker{checkers.NewTaxonomyChecker(taxStore)}
	if pool != nil {
		healthCheckers = append(healthCheckers, checkers.NewPostgresChecker(pool))
	}
	readiness := health.NewService(healthCheckers...)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.UploadMaxBytes) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	apihttp.Register(app,
		handlers.NewUploadHandler(extractor, zlog, cfg.UploadMaxBytes),
		handlers.NewAnalyzeHandler(analysisSvc, jobStore, zlog),
		handlers.NewChatHandler(relay, zlog),
		handlers.NewJobsHandler(jobStore, zlog),
		handlers.NewMatchHandler(jobStore, zlog),
		handlers.NewHealthHandler(readiness),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// SIGHUP swaps in fresh reference-data snapshots without a restart
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := reload(context.Background()); err != nil {
				zlog.Error("reference data reload failed", zap.Error(err))
			}
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		zlog.Info("shutting down")
		_ = app.Shutdown()
	}()

	zlog.Info("http server listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func loadRefData(ctx context.Context, cfg config.Config, repo *pgrepo.Repository) (*taxonomy.Taxonomy, *courses.Catalog, error) {
	if repo != nil {
		tax, err := repo.LoadTaxonomy(ctx)
		if err != nil {
			return nil, nil, err
		}
		cat, err := repo.LoadCatalog(ctx, cfg.RecommendCap)
		if err != nil {
			return nil, nil, err
		}
		return tax, cat, nil
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		var err error
		if tax, err = taxonomy.LoadFile(cfg.TaxonomyPath); err != nil {
			return nil, nil, err
		}
	}
	cat := courses.Default(cfg.RecommendCap)
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = courses.LoadFile(cfg.CatalogPath, cfg.RecommendCap); err != nil {
			return nil, nil, err
		}
	}
	return tax, cat, nil
}

func newProvider(ctx context.Context, cfg config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBase,
			cfg.OpenRouterModel,
			cfg.OpenRouterAppTitle,
			cfg.OpenRouterReferer,
		), nil
	}
}
