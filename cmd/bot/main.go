package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"slidemarket/internal/adapter/repository"
	"slidemarket/internal/adapter/telegram"
	"slidemarket/internal/infrastructure/media"
	"slidemarket/internal/infrastructure/storage"
	"slidemarket/internal/usecase"
	"slidemarket/internal/workflow"
	"slidemarket/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := storage.NewLocalStorage(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	listingRepo := repository.NewJSONFileListingRepository(cfg.DataDir)
	uploadRepo := repository.NewJSONFilePendingUploadRepository(cfg.DataDir)
	paymentRepo := repository.NewJSONFilePendingPaymentRepository(cfg.DataDir)

	normalizer := media.NewJPEGNormalizer()

	bot, err := telegram.NewBot(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	catalogUseCase := usecase.NewCatalogUseCase(listingRepo, files)
	uploadUseCase := usecase.NewUploadUseCase(uploadRepo, files, normalizer)
	purchaseUseCase := usecase.NewPurchaseUseCase(paymentRepo, files, normalizer)
	moderationUseCase := usecase.NewModerationUseCase(
		listingRepo, uploadRepo, paymentRepo, files, bot, cfg.AdminChatID, cfg.SellerShare)

	engine := workflow.NewEngine(
		bot, files, catalogUseCase, uploadUseCase, purchaseUseCase, moderationUseCase,
		cfg.PlatformCard, cfg.SellerShare)

	go serveHealth(cfg.HealthPort)

	log.Printf("Bot @%s is running", cfg.BotUsername)
	bot.Run(ctx, engine, moderationUseCase)
}

// serveHealth exposes a liveness endpoint for the hosting platform.
func serveHealth(port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Printf("Health server stopped: %v", err)
	}
}
