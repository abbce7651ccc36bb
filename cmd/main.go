package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/cache"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/config"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/database"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	doughController     controllers.DoughController
	toppingController   controllers.ToppingController
	beverageController  controllers.BeverageController
	pizzaTypeController controllers.PizzaTypeController
	userController      controllers.UserController
	orderController     controllers.OrderController
)

// @title Pizza Orders API
// @version 1.0
// @description Order management for a pizza delivery service: menu catalog, stock and orders
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupServices(configuration)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	checkPanicErr(database.Migrate(db))

	// Seed only if the menu is empty
	var count int64
	db.Model(&models.Dough{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the menu catalog with initial data
func seedDatabase() {
	log.Info("Seeding database with initial data")
	doughs := []models.Dough{
		{Name: "Classic", Price: decimal.NewFromFloat(2.50), Description: "Hand-tossed wheat dough", Stock: 100},
		{Name: "Whole Grain", Price: decimal.NewFromFloat(3.00), Description: "Whole grain dough", Stock: 50},
	}
	for i := range doughs {
		db.Create(&doughs[i])
	}

	toppings := []models.Topping{
		{Name: "Mozzarella", Price: decimal.NewFromFloat(1.20), Stock: 200},
		{Name: "Tomato Sauce", Price: decimal.NewFromFloat(0.80), Stock: 200},
		{Name: "Basil", Price: decimal.NewFromFloat(0.50), Stock: 80},
		{Name: "Pepperoni", Price: decimal.NewFromFloat(1.80), Stock: 120},
	}
	for i := range toppings {
		db.Create(&toppings[i])
	}

	beverages := []models.Beverage{
		{Name: "Cola", Price: decimal.NewFromFloat(2.20), Stock: 60},
		{Name: "Sparkling Water", Price: decimal.NewFromFloat(1.50), Stock: 60},
	}
	for i := range beverages {
		db.Create(&beverages[i])
	}

	margherita := models.PizzaType{
		Name:        "Margherita",
		Price:       decimal.NewFromFloat(8.90),
		Description: "Tomato sauce, mozzarella and basil",
		DoughID:     doughs[0].ID,
	}
	db.Omit("Dough").Create(&margherita)
	for i, quantity := range []int{1, 1, 1} {
		db.Create(&models.PizzaTypeToppingQuantity{
			PizzaTypeID: margherita.ID,
			ToppingID:   toppings[i].ID,
			Quantity:    quantity,
		})
	}
	log.Info("Database seeded successfully")
}

// setupServices wires the service and controller graph on top of the database
// connection. The catalog cache is enabled only when a Redis address is set.
func setupServices(conf *config.Config) {
	var cacheClient cache.Client
	if conf.RedisAddr != "" {
		cacheClient = cache.NewRedisClient(conf.RedisAddr)
	}

	doughController = controllers.NewDoughController(services.NewDoughService(db))
	toppingController = controllers.NewToppingController(services.NewToppingService(db))
	beverageController = controllers.NewBeverageController(services.NewBeverageService(db, cacheClient))
	pizzaTypeController = controllers.NewPizzaTypeController(services.NewPizzaTypeService(db, cacheClient))
	userController = controllers.NewUserController(services.NewUserService(db))
	orderController = controllers.NewOrderController(services.NewOrderService(db))
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.RequestLogger())

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		doughs := v1.Group("/doughs")
		{
			doughs.GET("", doughController.GetAllDoughs)
			doughs.GET("/:id", doughController.GetDough)
			doughs.POST("", doughController.CreateDough)
			doughs.PUT("/:id", doughController.UpdateDough)
			doughs.DELETE("/:id", doughController.DeleteDough)
		}

		toppings := v1.Group("/toppings")
		{
			toppings.GET("", toppingController.GetAllToppings)
			toppings.GET("/:id", toppingController.GetTopping)
			toppings.POST("", toppingController.CreateTopping)
			toppings.PUT("/:id", toppingController.UpdateTopping)
			toppings.DELETE("/:id", toppingController.DeleteTopping)
		}

		beverages := v1.Group("/beverages")
		{
			beverages.GET("", beverageController.GetAllBeverages)
			beverages.GET("/:id", beverageController.GetBeverage)
			beverages.POST("", beverageController.CreateBeverage)
			beverages.PUT("/:id", beverageController.UpdateBeverage)
			beverages.DELETE("/:id", beverageController.DeleteBeverage)
		}

		pizzaTypes := v1.Group("/pizza-types")
		{
			pizzaTypes.GET("", pizzaTypeController.GetAllPizzaTypes)
			pizzaTypes.GET("/:id", pizzaTypeController.GetPizzaType)
			pizzaTypes.POST("", pizzaTypeController.CreatePizzaType)
			pizzaTypes.PUT("/:id", pizzaTypeController.UpdatePizzaType)
			pizzaTypes.DELETE("/:id", pizzaTypeController.DeletePizzaType)
			pizzaTypes.GET("/:id/toppings", pizzaTypeController.GetPizzaTypeToppings)
			pizzaTypes.POST("/:id/toppings", pizzaTypeController.AddPizzaTypeTopping)
			pizzaTypes.GET("/:id/dough", pizzaTypeController.GetPizzaTypeDough)
		}

		users := v1.Group("/users")
		{
			users.GET("", userController.GetAllUsers)
			users.GET("/:id", userController.GetUser)
			users.POST("", userController.CreateUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
			users.GET("/:id/order-history", userController.GetOrderHistory)
			users.GET("/:id/open-orders", userController.GetOpenOrders)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.POST("", orderController.CreateOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)
			orders.PUT("/:id/status", orderController.SetOrderStatus)
			orders.GET("/:id/user", orderController.GetOrderUser)
			orders.GET("/:id/price", orderController.GetOrderPrice)

			orders.POST("/:id/pizzas", orderController.AddPizza)
			orders.GET("/:id/pizzas", orderController.GetPizzas)
			orders.DELETE("/:id/pizzas/:pizzaId", orderController.RemovePizza)

			orders.POST("/:id/beverages", orderController.AddBeverage)
			orders.GET("/:id/beverages", orderController.GetBeverages)
			orders.PUT("/:id/beverages/:beverageId", orderController.UpdateBeverage)
			orders.DELETE("/:id/beverages/:beverageId", orderController.RemoveBeverage)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-pizza-orders",
	})
}
