package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/api"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/config"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/db"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/intake"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/mail"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/storage"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	if err := logger.Initialize("info"); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать логгер: %v", err)
	}
	defer logger.Log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatal("configuration load failed", zap.Error(err))
	}
	if cfg.LogLevel != "info" {
		if err := logger.Initialize(cfg.LogLevel); err != nil {
			logger.Log.Fatal("logger re-init failed", zap.Error(err))
		}
	}

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		logger.Log.Fatal("database init failed", zap.Error(err))
	}
	defer db.CloseDB()

	// Фото-хранилище опционально: без него заказы принимаются без фотографий.
	var photoStore intake.PhotoStore
	if cfg.MinioEndpoint != "" {
		ps, err := storage.NewPhotoStorage(context.Background(), cfg)
		if err != nil {
			logger.Log.Fatal("photo storage init failed", zap.Error(err))
		}
		photoStore = ps
	}

	// Telegram-бот тоже опционален: сервис без него просто не шлёт уведомления.
	var notifier intake.Notifier
	if cfg.TelegramToken != "" {
		if err := telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev"); err != nil {
			logger.Log.Fatal("telegram bot init failed", zap.Error(err))
		}
		notifier = telegram_api.NewNotifier(telegram_api.Client, cfg.NotificationTargets())
	}

	var mailer intake.Mailer
	if m := mail.NewMailer(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail); m != nil {
		mailer = m
	}

	intakeService := intake.NewService(
		db.OrdersStore{},
		photoStore,
		nil, // координаты приходят только из браузера клиента
		notifier,
		mailer,
		cfg.PortalBaseURL,
	)

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()

	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.SetupRoutes(apiRouter, api.ApiDependencies{
		Config: cfg,
		Intake: intakeService,
	})

	apiRouter.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	logger.Log.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, apiRouter); err != nil {
		logger.Log.Fatal("http server failed", zap.Error(err))
	}
}
