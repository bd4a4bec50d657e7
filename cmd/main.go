package main

import (
	"access-request-server/config"
	_ "access-request-server/docs"
	"access-request-server/internal/handler"
	"access-request-server/internal/notifier"
	"access-request-server/internal/repository"
	"access-request-server/internal/security"
	"access-request-server/internal/service"
	"access-request-server/internal/signals"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Access-request-server
// @version 1.0
// @description REST API заявок на доступ к закрытым записям и секретных ссылок

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("APP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	secrets := security.StaticSecrets(cfg.SecretLinks.SecretKey)
	tokenFactory, err := security.NewTokenFactory(secrets)
	if err != nil {
		log.Fatalf("Ошибка создания фабрики токенов: %v", err)
	}
	emailTTL, err := cfg.EmailConfirmationTTL()
	if err != nil {
		log.Fatalf("Некорректный срок действия токена подтверждения: %v", err)
	}
	emailTokens, err := security.NewEmailConfirmationSerializer(secrets, emailTTL)
	if err != nil {
		log.Fatalf("Ошибка создания сериализатора токенов подтверждения: %v", err)
	}
	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания JWT сервиса: %v", err)
	}

	templates, err := notifier.NewTemplates()
	if err != nil {
		log.Fatalf("Ошибка загрузки шаблонов писем: %v", err)
	}
	urls, err := notifier.NewURLBuilder(&cfg.Site)
	if err != nil {
		log.Fatalf("Ошибка настройки адреса сайта: %v", err)
	}
	mailer := notifier.NewRedisMailer(redisClient, &cfg.Mail)

	accessRequestRepo := repository.NewAccessRequestRepository(db)
	secretLinkRepo := repository.NewSecretLinkRepository(db)
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, cfg.CacheTTL())

	bus := signals.NewBus()

	recordService := service.NewRecordService(recordRepo, cacheRepo, db)
	userService := service.NewUserService(userRepo, db)
	secretLinkService := service.NewSecretLinkService(secretLinkRepo, db, tokenFactory, bus, urls)
	accessRequestService := service.NewAccessRequestService(accessRequestRepo, db, secretLinkService, recordService, emailTokens, bus)
	authorizer := service.NewAuthorizer(secretLinkService)
	recordFileService := service.NewRecordFileService(recordService, authorizer, s3Service, cfg.CacheTTL())

	service.NewReceivers(service.ReceiversDeps{
		Mailer:       mailer,
		Templates:    templates,
		URLs:         urls,
		Records:      recordService,
		Users:        userService,
		EmailTokens:  emailTokens,
		Issuer:       accessRequestService,
		Links:        secretLinkService,
		LinkEndpoint: cfg.SecretLinks.LinkEndpoint,
	}).Register(bus)

	accessRequestHandler := handler.NewAccessRequestHandler(accessRequestService, userService)
	secretLinkHandler := handler.NewSecretLinkHandler(secretLinkService, recordService, cfg.SecretLinks.LinkEndpoint)
	recordFileHandler := handler.NewRecordFileHandler(recordFileService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	handler.SetupAccessRequestRoutes(router, accessRequestHandler, jwtService)
	handler.SetupSecretLinkRoutes(router, secretLinkHandler, jwtService)
	handler.SetupRecordFileRoutes(router, recordFileHandler, jwtService)

	runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
