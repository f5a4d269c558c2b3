package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/jamshiddins/vendbot/internal/api/handlers"
	"github.com/jamshiddins/vendbot/internal/api/routes"
	"github.com/jamshiddins/vendbot/internal/middleware"
	"github.com/jamshiddins/vendbot/internal/utils"
	"github.com/jamshiddins/vendbot/internal/utils/mailing"
	"github.com/jamshiddins/vendbot/internal/utils/storage"
	"github.com/jamshiddins/vendbot/pkg/allocation"
	"github.com/jamshiddins/vendbot/pkg/hopper"
	"github.com/jamshiddins/vendbot/pkg/jwt"
	"github.com/jamshiddins/vendbot/pkg/machine"
	"github.com/jamshiddins/vendbot/pkg/operation"
	"github.com/jamshiddins/vendbot/pkg/report"
	"github.com/jamshiddins/vendbot/pkg/stock"
	"github.com/jamshiddins/vendbot/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tashkent",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewLowStockMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	stockRepository := stock.NewStockRepository(db)
	hopperRepository := hopper.NewHopperRepository(db)
	machineRepository := machine.NewMachineRepository(db)
	operationRepository := operation.NewOperationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	operationService := operation.NewOperationService(operationRepository)
	userService := user.NewUserService(userRepository, jwtService, operationService)
	stockService := stock.NewStockService(stockRepository)
	hopperService := hopper.NewHopperService(hopperRepository, stockRepository)
	machineService := machine.NewMachineService(machineRepository, hopperRepository)
	allocationService := allocation.NewAllocationService(
		db,
		stockRepository,
		hopperRepository,
		machineRepository,
		operationRepository,
		mailer,
	)
	reportService := report.NewReportService(stockRepository, operationRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	stockHandler := handlers.NewStockHandler(stockService, allocationService, validator)
	hopperHandler := handlers.NewHopperHandler(hopperService, allocationService, validator)
	machineHandler := handlers.NewMachineHandler(machineService, allocationService, validator)
	operationHandler := handlers.NewOperationHandler(operationService, validator)
	reportHandler := handlers.NewReportHandler(reportService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		StockHandler:     stockHandler,
		HopperHandler:    hopperHandler,
		MachineHandler:   machineHandler,
		OperationHandler: operationHandler,
		ReportHandler:    reportHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
