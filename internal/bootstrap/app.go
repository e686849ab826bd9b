package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/chatbot"
	"resume-analyzer/internal/history"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/llm/gemini"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/sessions"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Sessions        *sessions.Store
	LLM             llm.Client
	History         history.Repo
	AnalysesService *analyses.Service
	ChatbotService  *chatbot.Service
	AnalysisHandler *analyses.Handler
	ChatbotHandler  *chatbot.Handler
	SessionHandler  *sessions.Handler
	Health          *health.Service
}

// Options overrides pieces of the dependency graph, mainly for tests and one-shot commands.
type Options struct {
	// LLM replaces the Gemini client.
	LLM llm.Client
	// SkipRouter leaves App.Router nil.
	SkipRouter bool
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient := opts.LLM
	if llmClient == nil {
		llmClient, err = buildLLM(ctx, cfg)
		if err != nil {
			closeDB(sqlDB)
			return nil, err
		}
	}
	llmClient = llm.NewRetrying(llmClient, cfg.LLMMaxRetries, 0)

	var historyRepo history.Repo
	if sqlDB != nil {
		historyRepo = &history.PGRepo{DB: sqlDB}
	} else {
		historyRepo = history.NewMemoryRepo(history.DefaultMemoryCapacity)
	}

	store := sessions.NewStore()
	analysisSvc := &analyses.Service{
		LLM:      llmClient,
		Sessions: store,
		History:  historyRepo,
		Model:    cfg.AnalysisModel,
		Timeout:  cfg.LLMTimeout,
	}
	chatSvc := &chatbot.Service{
		Assembler: &chatbot.Assembler{Sessions: store},
		LLM:       llmClient,
		Model:     cfg.ChatModel,
		Timeout:   cfg.LLMTimeout,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Sessions:        store,
		LLM:             llmClient,
		History:         historyRepo,
		AnalysesService: analysisSvc,
		ChatbotService:  chatSvc,
		AnalysisHandler: analyses.NewHandler(analysisSvc, cfg.MaxUploadBytes),
		ChatbotHandler:  chatbot.NewHandler(chatSvc),
		SessionHandler:  sessions.NewHandler(store),
		Health:          health.NewService(store.Len),
	}

	if !opts.SkipRouter {
		app.Router = server.NewRouter(server.RouterDeps{
			Config:          cfg,
			AnalysisHandler: app.AnalysisHandler,
			ChatbotHandler:  app.ChatbotHandler,
			SessionHandler:  app.SessionHandler,
			Health:          app.Health,
		})
	}

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a == nil {
		return
	}
	closeDB(a.DB)
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{
				"reason": "GEMINI_API_KEY not set; model calls will fail",
			})
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.ChatModel)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		telemetry.Info("bootstrap.history_memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.history_memory", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		closeDB(sqlDB)
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.history_memory", map[string]any{"reason": "migrations failed", "error": err})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB == nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		telemetry.Warn("db.close", map[string]any{"error": err})
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
