package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/internal/api/handlers"
	"github.com/jamshiddins/vendbot/internal/middleware"
	"github.com/jamshiddins/vendbot/pkg/jwt"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	StockHandler     handlers.StockHandler
	HopperHandler    handlers.HopperHandler
	MachineHandler   handlers.MachineHandler
	OperationHandler handlers.OperationHandler
	ReportHandler    handlers.ReportHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Stock()
	c.Hoppers()
	c.Machines()
	c.Operations()
	c.Reports()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/roles", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.AssignRole)
		user.Delete("/roles", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.RemoveRole)
	}
}

func (c *Config) Stock() {
	stock := c.App.Group("/api/v1/stock", c.Middleware.AuthMiddleware(c.JWTService))
	{
		stock.Post("/ingredients", c.StockHandler.CreateIngredientType)
		stock.Patch("/ingredients/:id", c.StockHandler.UpdateIngredientType)
		stock.Get("/summary", c.StockHandler.GetSummary)
		stock.Get("/:id", c.StockHandler.GetStatus)
		stock.Post("/receive", c.StockHandler.ReceiveStock)
		stock.Post("/adjust", c.StockHandler.AdjustInventory)
	}
}

func (c *Config) Hoppers() {
	hoppers := c.App.Group("/api/v1/hoppers", c.Middleware.AuthMiddleware(c.JWTService))
	{
		hoppers.Post("", c.HopperHandler.CreateHopper)
		hoppers.Get("", c.HopperHandler.GetHoppers)
		hoppers.Get("/:code", c.HopperHandler.GetHopper)
		hoppers.Post("/fill", c.HopperHandler.FillHopper)
		hoppers.Post("/install", c.HopperHandler.InstallHopper)
		hoppers.Post("/remove", c.HopperHandler.RemoveHopper)
		hoppers.Post("/:id/to-cleaning", c.HopperHandler.SendToCleaning)
		hoppers.Post("/:id/clean", c.HopperHandler.CleanHopper)
		hoppers.Post("/issue", c.HopperHandler.IssueHopper)
		hoppers.Post("/return", c.HopperHandler.ReturnHopper)
	}
}

func (c *Config) Machines() {
	machines := c.App.Group("/api/v1/machines", c.Middleware.AuthMiddleware(c.JWTService))
	{
		machines.Post("", c.MachineHandler.CreateMachine)
		machines.Get("", c.MachineHandler.GetMachines)
		machines.Get("/:code", c.MachineHandler.GetMachine)
		machines.Post("/status", c.MachineHandler.ChangeStatus)
		machines.Post("/service", c.MachineHandler.MarkService)
		machines.Post("/operator", c.MachineHandler.AssignOperator)
	}
}

func (c *Config) Operations() {
	operations := c.App.Group("/api/v1/operations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		operations.Get("", c.OperationHandler.GetHistory)
		operations.Post("/photos", c.OperationHandler.AttachPhoto)
	}
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.Middleware.AuthMiddleware(c.JWTService))
	{
		reports.Get("/stock", c.ReportHandler.StockReport)
		reports.Get("/history", c.ReportHandler.HistoryReport)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
