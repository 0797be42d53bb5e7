package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admitdesk/config"
	dispatchcron "admitdesk/cron"
	"admitdesk/database"
	employeeRepo "admitdesk/database/repository/employee"
	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/handlers"
	"admitdesk/routes"
	"admitdesk/services/employee"
	"admitdesk/services/notification"
	"admitdesk/services/realtime"
	"admitdesk/services/reminders"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(); err != nil {
		logger.Fatal("MongoDB connection failed", zap.Error(err))
	}
	if cfg.RedisEnabled {
		if err := utils.InitRedis(); err != nil {
			logger.Fatal("Redis connection failed", zap.Error(err))
		}
	}

	// repositories.
	remRepo, err := reminderRepo.NewMongoReminderRepo(database.DB())
	if err != nil {
		logger.Fatal("Failed to initialise reminder repository", zap.Error(err))
	}
	empRepo, err := employeeRepo.NewMongoEmployeeRepo(database.DB())
	if err != nil {
		logger.Fatal("Failed to initialise employee repository", zap.Error(err))
	}

	// services.
	clock := reminders.Clock{Offset: cfg.ReminderTZOffset}
	reminderService := &reminders.DefaultReminderService{Repo: remRepo, Clock: clock}
	employeeService := &employee.DefaultEmployeeService{
		Repo:     empRepo,
		Cache:    utils.CacheClient,
		CacheTTL: cfg.ContactCacheTTL,
		Logger:   logger,
	}

	// realtime channel.
	hub := realtime.NewHub(0)
	var channel realtime.Publisher = hub
	if cfg.RealtimeBackend == "redis" {
		if utils.PubSubClient == nil {
			logger.Fatal("REALTIME_BACKEND=redis requires REDIS_ENABLED=true")
		}
		bridge := &realtime.RedisBridge{Client: utils.PubSubClient, Hub: hub, Logger: logger}
		if err := bridge.Start(ctx); err != nil {
			logger.Fatal("Realtime bridge failed to start", zap.Error(err))
		}
		channel = &realtime.RedisPublisher{Client: utils.PubSubClient}
	}

	// SMS delivery.
	providerSender := buildSMSProvider(ctx, cfg, logger)
	var smsSender notification.SMSSender = notification.WithTimeout(providerSender, cfg.SMSTimeout)
	var smsWorker *asynq.Server
	var queueClient *asynq.Client
	if cfg.SMSDelivery == "queue" {
		if !cfg.RedisEnabled {
			logger.Fatal("SMS_DELIVERY=queue requires REDIS_ENABLED=true")
		}
		redisOpts := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		queueClient = asynq.NewClient(redisOpts)
		var mux *asynq.ServeMux
		smsWorker, mux = dispatchcron.NewSMSWorker(redisOpts, smsSender, logger)
		if err := smsWorker.Start(mux); err != nil {
			logger.Fatal("SMS worker failed to start", zap.Error(err))
		}
		smsSender = &notification.QueuedSMSSender{
			Client:   queueClient,
			MaxRetry: cfg.SMSMaxRetry,
			Timeout:  cfg.SMSTimeout,
		}
	}

	// push delivery.
	var pushSender notification.PushSender
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := utils.NewFCMClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("Failed to initialise Firebase messaging", zap.Error(err))
		}
		pushSender = &notification.FCMPushSender{Client: fcm}
	}

	dispatcher := &reminders.Dispatcher{
		Reminders: remRepo,
		Contacts:  employeeService,
		Channel:   channel,
		SMS:       smsSender,
		Push:      pushSender,
		Clock:     clock,
		MaxLag:    cfg.ReminderMaxLag,
		BatchSize: cfg.DispatchBatchSize,
		Logger:    logger,
	}
	scheduler, err := dispatchcron.NewDispatchScheduler(cfg.DispatchSchedule, cfg.DispatchTickTimeout, dispatcher, logger)
	if err != nil {
		logger.Fatal("Failed to schedule reminder dispatch", zap.Error(err))
	}
	scheduler.Start()

	health := &utils.HealthMonitor{
		Mongo:    utils.PingFunc(func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) }),
		Redis:    map[string]utils.Pinger{},
		Interval: time.Minute,
	}
	if utils.CacheClient != nil {
		health.Redis["cache"] = utils.PingFunc(func(ctx context.Context) error { return utils.CacheClient.Ping(ctx).Err() })
	}
	if utils.PubSubClient != nil {
		health.Redis["pubsub"] = utils.PingFunc(func(ctx context.Context) error { return utils.PubSubClient.Ping(ctx).Err() })
	}
	health.Start(ctx)

	reminderHandler := handlers.NewReminderHandler(reminderService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	realtimeHandler := handlers.NewRealtimeHandler(hub, cfg.RealtimeHeartbeat)
	adminHandler := handlers.NewAdminHandler(dispatcher, health)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateReminderHandler:        reminderHandler.CreateReminderHandler,
		ListRemindersHandler:         reminderHandler.ListRemindersHandler,
		GetReminderHandler:           reminderHandler.GetReminderHandler,
		DeleteReminderHandler:        reminderHandler.DeleteReminderHandler,
		DeleteTargetRemindersHandler: reminderHandler.DeleteTargetRemindersHandler,

		CreateEmployeeHandler: employeeHandler.CreateEmployeeHandler,
		GetEmployeeHandler:    employeeHandler.GetEmployeeHandler,
		UpdateContactHandler:  employeeHandler.UpdateContactHandler,

		StreamHandler: realtimeHandler.StreamHandler,

		DispatchHandler: adminHandler.DispatchHandler,
		HealthHandler:   adminHandler.HealthHandler,

		AdminToken:        cfg.AdminToken,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	<-scheduler.Stop().Done()
	if smsWorker != nil {
		smsWorker.Shutdown()
	}
	if queueClient != nil {
		queueClient.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	for _, c := range utils.RedisClients() {
		c.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
	}
	logger.Info("Server exiting")
}

// buildSMSProvider returns the sender that talks to the SMS provider.
func buildSMSProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) notification.SMSSender {
	switch cfg.SMSProvider {
	case "sns":
		s, err := notification.NewSNSSMSSender(ctx, cfg.AWSRegion, cfg.SMSSenderID, logger)
		if err != nil {
			logger.Fatal("Failed to initialise SNS sender", zap.Error(err))
		}
		return s
	case "console", "":
		return &notification.ConsoleSMSSender{Logger: logger}
	default:
		logger.Fatal("Unknown SMS_PROVIDER", zap.String("provider", cfg.SMSProvider))
		return nil
	}
}
