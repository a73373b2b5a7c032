package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/api/rest"
	restctx "github.com/ddrozdov/gatehouse-server/internal/api/rest/context"
	"github.com/ddrozdov/gatehouse-server/internal/config"
	"github.com/ddrozdov/gatehouse-server/internal/keys"
	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
	"github.com/ddrozdov/gatehouse-server/internal/obs"
	"github.com/ddrozdov/gatehouse-server/internal/password"
	"github.com/ddrozdov/gatehouse-server/internal/repository/postgres"
	"github.com/ddrozdov/gatehouse-server/internal/server"
	"github.com/ddrozdov/gatehouse-server/internal/service"
	"github.com/ddrozdov/gatehouse-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	grantRepo := postgres.NewGrantRepository(db)

	signingKeys, err := loadSigningKeys(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load signing keys", "error", err)
	}
	tokenManager := token.NewJWT(signingKeys, cfg.Token.QueryTTL, cfg.Token.RefreshTTL)

	policy := password.NewPolicy(password.NewZxcvbnScorer(), cfg.Password.MinScore)

	credentialService := service.NewCredential(tokenManager, logger)
	accessService := service.NewAccess(grantRepo, logger)
	accountService := service.NewAccount(accountRepo, policy, credentialService, accessService, logger)
	permissionService := service.NewPermission(grantRepo, accessService, logger)
	ctxMgr := restctx.NewManager()

	if cfg.Admin.SubjectID != "" {
		adminID, err := uuid.Parse(cfg.Admin.SubjectID)
		if err != nil {
			logger.Fatal("invalid admin subject id", "error", err)
		}
		if err := permissionService.EnsureAdmin(ctx, adminID); err != nil {
			logger.Fatal("failed to bootstrap admin grants", "error", err)
		}
	}

	obs.Init()
	obs.SetBuildInfo(buildVersion, buildCommit)

	router := rest.NewRouter(accountService, credentialService, accessService, permissionService, ctxMgr, logger)
	httpServer := server.NewHTTPServer(router.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func loadSigningKeys(cfg *config.Config, logger *logger.Logger) (*keys.Pair, error) {
	if cfg.Token.PrivateKeyFile != "" && cfg.Token.PublicKeyFile != "" {
		return keys.Load(cfg.Token.PrivateKeyFile, cfg.Token.PublicKeyFile)
	}

	logger.Warn("no signing key files configured, generating an ephemeral pair; tokens will not survive restarts")
	return keys.Generate()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
