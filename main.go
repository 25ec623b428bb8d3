package main

import (
	"log"

	"trendline/cache"
	"trendline/config"
	"trendline/controllers"
	"trendline/graph"
	"trendline/repository"
	"trendline/routes"
	"trendline/search"
	"trendline/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error initializing database: %v", err)
		log.Fatal("Error initializing database:", err)
	}

	// Seed bootstrap data
	if err := config.SeedAdmin(db); err != nil {
		utils.LogError("Failed to seed admin: %v", err)
		log.Fatal("Failed to seed admin:", err)
	}
	if err := config.SeedCatalogDefaults(db); err != nil {
		utils.LogError("Failed to seed catalog: %v", err)
		log.Fatal("Failed to seed catalog:", err)
	}

	// Repositories
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	customers := repository.NewCustomerRepository(db)
	discounts := repository.NewDiscountRepository(db)
	catalog := repository.NewCatalogRepository(db)
	reports := repository.NewReportRepository(db)

	// Response cache
	responseCache := cache.New()

	// Full-text index is optional; without ELASTIC_URL the search
	// endpoints answer 503
	var index search.ProductIndex
	if cfg.ElasticURL != "" {
		index, err = search.NewElasticIndex(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			utils.LogError("Search index unavailable, continuing without it: %v", err)
			index = nil
		}
	}

	// GraphQL schema and stock subscription hub
	schema, err := graph.NewSchema(graph.Dependencies{
		Products:  products,
		Orders:    orders,
		Customers: customers,
		Discounts: discounts,
		Catalog:   catalog,
	})
	if err != nil {
		utils.LogError("Failed to build GraphQL schema: %v", err)
		log.Fatal("Failed to build GraphQL schema:", err)
	}
	hub := graph.NewHub()

	// Controllers
	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(db),
		Product:  controllers.NewProductController(products, responseCache),
		Quantity: controllers.NewQuantityController(products, responseCache, hub),
		Order:    controllers.NewOrderController(orders, customers, responseCache),
		Customer: controllers.NewCustomerController(customers, responseCache),
		Discount: controllers.NewDiscountController(discounts, responseCache),
		Catalog:  controllers.NewCatalogController(catalog, responseCache),
		Report:   controllers.NewReportController(reports),
		Search:   controllers.NewSearchController(products, index),
	}

	router := routes.SetupRouter(ctrl, schema, hub)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
