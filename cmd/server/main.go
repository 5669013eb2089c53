package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	clientStore "github.com/studiohub/normative-matching-service/internal/clients/store"
	"github.com/studiohub/normative-matching-service/internal/embedding"
	healthProvider "github.com/studiohub/normative-matching-service/internal/health_check/provider"
	matchingProvider "github.com/studiohub/normative-matching-service/internal/matching/provider"
	"github.com/studiohub/normative-matching-service/internal/matching/service"
	ruleProvider "github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	"github.com/studiohub/normative-matching-service/internal/notifications"
	suggestionStore "github.com/studiohub/normative-matching-service/internal/suggestions/store"
	"github.com/studiohub/normative-matching-service/internal/system/cache"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/database/provider"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/managers"
	"github.com/studiohub/normative-matching-service/internal/system/schedulers"
	"github.com/studiohub/normative-matching-service/internal/system/security"
	"github.com/studiohub/normative-matching-service/internal/system/workers"
)

const (
	configFile      = "/repository/conf/deployment.yaml"
	shutdownTimeout = 15 * time.Second
)

func main() {
	nmsHome := getNMSHome()

	envFiles, err := filepath.Glob(filepath.Join(nmsHome, "config", "*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	nmsConfig, err := config.LoadConfig(nmsHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitializeNMSRuntime(nmsHome, nmsConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(nmsConfig.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	location, err := time.LoadLocation(nmsConfig.Matching.Timezone)
	if err != nil {
		logger.Fatal("Invalid matching timezone", log.String("timezone", nmsConfig.Matching.Timezone), log.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbProvider := provider.NewDBProvider()

	var publisher workers.NotificationPublisher
	if nmsConfig.Notifications.Enabled {
		kafkaPublisher := notifications.NewPublisher(nmsConfig.Notifications)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Warn("Failed to close notification publisher", log.Error(err))
			}
		}()
		publisher = kafkaPublisher
	}
	deliveryWorker := workers.NewMatchDeliveryWorker(nmsConfig.Notifications.QueueSize,
		suggestionStore.NewSuggestionStore(dbProvider), publisher)
	deliveryWorker.Start(ctx)

	queryCache := cache.NewCache[[]float32](time.Duration(nmsConfig.Matching.QueryCacheTTL) * time.Second)
	similarity := embedding.NewCosineBackend(embedding.NewHTTPClient(nmsConfig.Embedding), queryCache)

	matching := matchingProvider.NewMatchingProvider(dbProvider, similarity, service.Options{
		ConditionMode:     nmsConfig.Matching.ConditionMode,
		SemanticThreshold: nmsConfig.Matching.SemanticThreshold,
		Location:          location,
		Sink:              deliveryWorker,
	})

	if nmsConfig.Scheduler.Enabled {
		scheduler := schedulers.NewMatchScheduler(clientStore.NewClientStore(dbProvider),
			matching.GetMatchingService(), nmsConfig.Scheduler.SchedulerInterval(),
			nmsConfig.Scheduler.TenantConcurrency)
		go scheduler.Start(ctx)
	}

	mux := initMultiplexer(managers.Providers{
		Health:     healthProvider.NewHealthCheckProvider(dbProvider),
		Rules:      ruleProvider.NewMatchingRuleProvider(dbProvider),
		Matching:   matching,
		Authorizer: security.NewAuthorizer(nmsConfig.Auth),
	})

	serverAddr := fmt.Sprintf("%s:%d", nmsConfig.Addr.Host, nmsConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("address", serverAddr), log.Error(err))
	}
	server := &http.Server{
		Handler:           enableCORS(mux, nmsConfig.Auth.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Normative matching service started in: %s", serverAddr))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down normative matching service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server did not shut down cleanly", log.Error(err))
	}
	deliveryWorker.Stop()
	if err := provider.CloseDB(); err != nil {
		logger.Warn("Failed to close database pool", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(providers managers.Providers) *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, providers)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+constants.TraceIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", constants.TraceIDHeader)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getNMSHome() string {

	// Parse project directory from command line arguments.
	projectHomeFlag := flag.String("nmsHome", "", "Path to normative matching service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	return dir
}
