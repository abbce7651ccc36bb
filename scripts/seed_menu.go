package main

import (
	"flag"
	"log"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Development helper: seeds a sqlite database with a small menu and stock so
// the API can be exercised locally without manual catalog setup.
func main() {
	dbPath := flag.String("db", "pizza.sqlite", "Path to the sqlite database file")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = db.AutoMigrate(
		&models.Dough{}, &models.Topping{}, &models.Beverage{},
		&models.PizzaType{}, &models.PizzaTypeToppingQuantity{},
	)
	if err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	classic := models.Dough{Name: "Classic", Price: decimal.NewFromFloat(2.50), Description: "Hand-stretched wheat dough", Stock: 50}
	wholegrain := models.Dough{Name: "Wholegrain", Price: decimal.NewFromFloat(3.00), Description: "Wholegrain dough", Stock: 30}
	for _, dough := range []*models.Dough{&classic, &wholegrain} {
		if err := db.FirstOrCreate(dough, models.Dough{Name: dough.Name}).Error; err != nil {
			log.Fatal("Failed to seed dough:", err)
		}
	}

	mozzarella := models.Topping{Name: "Mozzarella", Price: decimal.NewFromFloat(1.20), Description: "Fior di latte", Stock: 100}
	salami := models.Topping{Name: "Salami", Price: decimal.NewFromFloat(1.50), Description: "Spicy salami", Stock: 80}
	basil := models.Topping{Name: "Basil", Price: decimal.NewFromFloat(0.50), Description: "Fresh basil", Stock: 60}
	for _, topping := range []*models.Topping{&mozzarella, &salami, &basil} {
		if err := db.FirstOrCreate(topping, models.Topping{Name: topping.Name}).Error; err != nil {
			log.Fatal("Failed to seed topping:", err)
		}
	}

	beverages := []models.Beverage{
		{Name: "Cola", Price: decimal.NewFromFloat(3.50), Description: "0.5l bottle", Stock: 120},
		{Name: "Sparkling Water", Price: decimal.NewFromFloat(2.00), Description: "0.5l bottle", Stock: 200},
	}
	for i := range beverages {
		if err := db.FirstOrCreate(&beverages[i], models.Beverage{Name: beverages[i].Name}).Error; err != nil {
			log.Fatal("Failed to seed beverage:", err)
		}
	}

	margherita := models.PizzaType{
		Name:        "Margherita",
		Price:       decimal.NewFromFloat(10.99),
		Description: "Tomato, mozzarella, basil",
		DoughID:     classic.ID,
	}
	if err := db.FirstOrCreate(&margherita, models.PizzaType{Name: margherita.Name}).Error; err != nil {
		log.Fatal("Failed to seed pizza type:", err)
	}
	quantities := []models.PizzaTypeToppingQuantity{
		{PizzaTypeID: margherita.ID, ToppingID: mozzarella.ID, Quantity: 2},
		{PizzaTypeID: margherita.ID, ToppingID: basil.ID, Quantity: 1},
	}
	for i := range quantities {
		err := db.FirstOrCreate(&quantities[i], models.PizzaTypeToppingQuantity{
			PizzaTypeID: quantities[i].PizzaTypeID,
			ToppingID:   quantities[i].ToppingID,
		}).Error
		if err != nil {
			log.Fatal("Failed to seed topping quantity:", err)
		}
	}

	log.Println("Menu seeded into", *dbPath)
}
