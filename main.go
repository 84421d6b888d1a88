package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"mountify/config"
	"mountify/cron"
	"mountify/database"
	bookingRepo "mountify/database/repository/booking"
	catalogRepo "mountify/database/repository/catalog"
	coverageRepo "mountify/database/repository/coverage"
	invoiceRepo "mountify/database/repository/invoice"
	logsRepo "mountify/database/repository/logs"
	transactionRepo "mountify/database/repository/transaction"
	userRepoPkg "mountify/database/repository/user"
	"mountify/events"
	"mountify/handlers"
	"mountify/metrics"
	"mountify/routes"
	"mountify/services/admin"
	"mountify/services/booking"
	"mountify/services/coverage"
	"mountify/services/invoice"
	"mountify/services/notification"
	"mountify/services/payment"
	"mountify/services/storage"
	"mountify/services/user"
	"mountify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	metrics.Register()

	stripe.Key = config.AppConfig.StripeKey

	var storageService storage.StorageService
	if cs, err := storage.NewCloudinaryStorage(logger); err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, document uploads disabled: %v", err)
	} else {
		storageService = cs
	}

	// repositories.
	bkgRepo := bookingRepo.NewMongoBookingRepo()
	txnRepo := transactionRepo.NewMongoTransactionRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()
	invRepo := invoiceRepo.NewMongoInvoiceRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()
	covRepo := coverageRepo.NewMongoCoverageRepo()
	logRepo := logsRepo.NewMongoLogRepo()

	// background queue client for the email worker.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	emailClient := notification.NewEmailClient()
	notificationService, err := notification.NewDefaultNotificationService(
		usrRepo, logRepo, queueClient, emailClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	hub := events.NewHub()

	coverageService := coverage.NewDefaultCoverageService(
		covRepo, hub, logger,
		time.Duration(config.AppConfig.CoverageCacheTTL)*time.Second, nil)

	paymentService := &payment.DefaultPaymentService{
		Repo:      txnRepo,
		Invoices:  invRepo,
		Users:     usrRepo,
		Processor: payment.NewStripeProcessor(),
		Notifier:  notificationService,
		Logger:    logger,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:     bkgRepo,
		Catalog:  catRepo,
		Users:    usrRepo,
		Coverage: coverageService,
		Payments: paymentService,
		Notifier: notificationService,
		Sessions: utils.GetSessionCacheClient(),
		Hub:      hub,
		Logger:   logger,
	}

	invoiceService := &invoice.DefaultInvoiceService{
		Repo:     invRepo,
		Bookings: bkgRepo,
		Txns:     txnRepo,
		Notifier: notificationService,
		Hub:      hub,
		Logger:   logger,
	}

	userService := &user.DefaultUserService{
		Repo:     usrRepo,
		Coverage: coverageService,
		Storage:  storageService,
		Logger:   logger,
	}

	adminService := &admin.DefaultAdminService{
		Payments: paymentService,
		Txns:     txnRepo,
		Bookings: bkgRepo,
		Users:    usrRepo,
		Logger:   logger,
	}

	// background email worker and periodic health checks.
	cron.InitEmailWorker(emailClient, logRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: usrRepo,
		Catalog:  catRepo,
		Users:    userService,
		Bookings: bookingService,
		Invoices: invoiceService,
		Coverage: coverageService,
		Admin:    adminService,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
