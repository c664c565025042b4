package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	logger_adapter "property-search-service/internal/adapters/logger"
	"property-search-service/internal/adapters/marketplace_api_client"
	scheduler_adapter "property-search-service/internal/adapters/scheduler"
	session_adapter "property-search-service/internal/adapters/session"
	view_adapter "property-search-service/internal/adapters/view"
	"property-search-service/internal/configs"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
	"property-search-service/internal/core/usecase"
)

// App - безголовый раннер поисковой сессии: тот же оркестратор, что
// стоит за страницами выдачи, но с логирующими адаптерами отображения.
type App struct {
	config       *configs.AppConfig
	session      *usecase.SearchSession
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- логгеры ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluent client", err, nil)
			return nil, err
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluent adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- адаптеры ---
	apiClient := marketplace_api_client.NewClient(appConfig.API.BaseURL, appConfig.API.ValidateResponses)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	sessionAdapter, err := session_adapter.NewCookieSessionAdapter(jar, appConfig.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session adapter: %w", err)
	}

	debouncer := scheduler_adapter.NewTimerDebouncer(time.Duration(appConfig.Search.DebounceMS) * time.Millisecond)
	view := view_adapter.NewLoggingViewAdapter(baseLogger)

	// --- use cases и сессия ---
	suggestUC := usecase.NewSuggestListingsUseCase(apiClient, debouncer, view)
	resultsUC := usecase.NewFetchResultsUseCase(apiClient)
	favoritesUC := usecase.NewToggleFavoriteUseCase(apiClient, sessionAdapter)
	countiesUC := usecase.NewLoadCountyCirclesUseCase(apiClient)

	mode := domain.ViewModeGrid
	if appConfig.Search.ViewMode == string(domain.ViewModeMap) {
		mode = domain.ViewModeMap
	}
	initial, err := url.ParseQuery(appConfig.Search.InitialQuery)
	if err != nil {
		appLogger.Warn("Malformed INITIAL_QUERY, starting with defaults", port.Fields{"error": err.Error()})
		initial = url.Values{}
	}

	session := usecase.NewSearchSession(mode, initial, usecase.SearchSessionDeps{
		Results:   resultsUC,
		Suggest:   suggestUC,
		Favorites: favoritesUC,
		Counties:  countiesUC,
		View:      view,
		MapWidget: view,
		URL:       view,
		Navigator: view,
		Logger:    baseLogger,
	})
	appLogger.Info("Search session configured", port.Fields{"view": mode})

	return &App{
		config:       appConfig,
		session:      session,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run монтирует сессию, включает фоновый повтор и ждёт сигнала на
// завершение.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Application shut down gracefully.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	a.session.Start(appCtx)
	a.session.StartAutoRefresh(appCtx, time.Duration(a.config.Search.RefreshIntervalSec)*time.Second)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Session running. Waiting for signal...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()
	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
