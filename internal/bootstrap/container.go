package bootstrap

import (
	"excel-analytics-be/internal/config"
	"excel-analytics-be/internal/controller"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/pkg/storage"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/internal/service"
	"excel-analytics-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	UploadController controller.IUploadController
	ChartController  controller.IChartController
	AdminController  controller.IAdminController

	// Background Services (Exposed for main.go to run)
	AuditConsumerService service.IAuditConsumerService

	// Shared logger, used by the server's error handler.
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	store := storage.NewDiskStorage(cfg.Storage.UploadDir)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(pubSub, events.TopicUploadActivity)
	auditConsumerService := service.NewAuditConsumerService(
		pubSub,
		events.TopicUploadActivity,
		uowFactory,
		sysLogger,
	)

	// 3. Services
	authService := service.NewAuthService(uowFactory)
	uploadService := service.NewUploadService(uowFactory, store, publisherService, sysLogger)
	chartService := service.NewChartService(uploadService, publisherService, cfg.Chart.SessionTTL)
	adminService := service.NewAdminService(uowFactory)

	// 4. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		UploadController: controller.NewUploadController(uploadService),
		ChartController:  controller.NewChartController(chartService),
		AdminController:  controller.NewAdminController(adminService),

		AuditConsumerService: auditConsumerService,
		Logger:               sysLogger,
	}
}
