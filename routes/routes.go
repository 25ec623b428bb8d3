// Package routes wires the HTTP surface: every endpoint sits under
// /api/v1, with role gates mirroring the link sets the API advertises.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"trendline/controllers"
	"trendline/graph"
	"trendline/middleware"
	"trendline/models"
	"trendline/utils"
)

// Controllers carries the composed handlers the router mounts
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Quantity *controllers.QuantityController
	Order    *controllers.OrderController
	Customer *controllers.CustomerController
	Discount *controllers.DiscountController
	Catalog  *controllers.CatalogController
	Report   *controllers.ReportController
	Search   *controllers.SearchController
}

// SetupRouter builds the engine with the global middleware chain, the REST
// surface under /api/v1, the GraphQL endpoint and the stock subscription
// socket
func SetupRouter(ctrl Controllers, schema graphql.Schema, hub *graph.Hub) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RateLimitMiddleware(20, 40))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public endpoints
	v1.POST("/auth/register", ctrl.Auth.Register)
	v1.POST("/auth/login", ctrl.Auth.Login)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware())

	elevated := authed.Group("")
	elevated.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleAdvancedUser))

	shoppers := authed.Group("")
	shoppers.Use(middleware.RequireRoles(models.RoleCustomer, models.RoleAdmin, models.RoleAdvancedUser))

	adminOnly := authed.Group("")
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))

	// Products: reads for every authenticated role, mutations elevated
	authed.GET("/products", ctrl.Product.GetProducts)
	authed.GET("/products/:id", ctrl.Product.GetProduct)
	authed.GET("/products/byCategory/:category", ctrl.Product.GetProductsByCategory)
	authed.GET("/products/byBrand/:brand", ctrl.Product.GetProductsByBrand)
	authed.GET("/products/byGender/:gender", ctrl.Product.GetProductsByGender)
	authed.GET("/products/byPriceRange", ctrl.Product.GetProductsByPriceRange)
	authed.GET("/products/bySize/:size", ctrl.Product.GetProductsBySize)
	authed.GET("/products/byColor/:color", ctrl.Product.GetProductsByColor)
	authed.GET("/products/countByCategory/:category", ctrl.Product.CountProductsByCategory)
	authed.GET("/products/countByBrand/:brand", ctrl.Product.CountProductsByBrand)
	authed.GET("/products/countAvailable", ctrl.Product.CountAvailableProducts)
	authed.GET("/products/countOutOfStock", ctrl.Product.CountOutOfStockProducts)
	authed.GET("/products/search", ctrl.Product.SearchProducts)
	authed.GET("/products/quantity/:id", ctrl.Quantity.GetProductQuantity)

	elevated.POST("/products", ctrl.Product.AddProduct)
	elevated.PUT("/products/:id", ctrl.Product.EditProduct)
	elevated.DELETE("/products/:id", ctrl.Product.DeleteProduct)
	elevated.PUT("/products/quantity/:id", ctrl.Quantity.UpdateProductQuantity)

	// Orders: placement for shoppers, management elevated, single-order
	// reads check ownership in the handler
	shoppers.POST("/orders", ctrl.Order.CreateOrder)
	authed.GET("/orders/:id", ctrl.Order.GetOrder)
	authed.GET("/orders/:id/items", ctrl.Order.GetOrderItems)
	authed.GET("/orders/customer/:id", ctrl.Order.GetCustomerOrders)
	elevated.GET("/orders", ctrl.Order.GetOrders)
	elevated.GET("/orders/status/:status", ctrl.Order.GetOrdersByStatus)
	elevated.GET("/orders/dateRange", ctrl.Order.GetOrdersByDateRange)
	elevated.PUT("/orders/:id/status", ctrl.Order.UpdateOrderStatus)
	elevated.DELETE("/orders/:id", ctrl.Order.DeleteOrder)

	// Customers
	adminOnly.GET("/customers", ctrl.Customer.GetCustomers)
	authed.GET("/customers/:id", ctrl.Customer.GetCustomer)
	authed.PUT("/customers/:id", ctrl.Customer.UpdateCustomer)
	adminOnly.DELETE("/customers/:id", ctrl.Customer.DeleteCustomer)

	// Discounts
	authed.GET("/discounts", ctrl.Discount.GetDiscounts)
	authed.GET("/discounts/:id", ctrl.Discount.GetDiscount)
	elevated.POST("/discounts", ctrl.Discount.AddDiscount)
	elevated.PUT("/discounts/:id", ctrl.Discount.UpdateDiscount)
	elevated.DELETE("/discounts/:id", ctrl.Discount.DeleteDiscount)

	// Catalog taxonomy
	authed.GET("/catalog/brands", ctrl.Catalog.GetBrands)
	authed.GET("/catalog/brands/:id", ctrl.Catalog.GetBrand)
	adminOnly.POST("/catalog/brands", ctrl.Catalog.AddBrand)
	adminOnly.PUT("/catalog/brands/:id", ctrl.Catalog.UpdateBrand)
	adminOnly.DELETE("/catalog/brands/:id", ctrl.Catalog.DeleteBrand)
	authed.GET("/catalog/categories", ctrl.Catalog.GetCategories)
	authed.GET("/catalog/categories/:id", ctrl.Catalog.GetCategory)
	adminOnly.POST("/catalog/categories", ctrl.Catalog.AddCategory)
	adminOnly.PUT("/catalog/categories/:id", ctrl.Catalog.UpdateCategory)
	adminOnly.DELETE("/catalog/categories/:id", ctrl.Catalog.DeleteCategory)
	authed.GET("/catalog/colors", ctrl.Catalog.GetColors)
	authed.GET("/catalog/colors/:id", ctrl.Catalog.GetColor)
	adminOnly.POST("/catalog/colors", ctrl.Catalog.AddColor)
	adminOnly.PUT("/catalog/colors/:id", ctrl.Catalog.UpdateColor)
	adminOnly.DELETE("/catalog/colors/:id", ctrl.Catalog.DeleteColor)
	authed.GET("/catalog/sizes", ctrl.Catalog.GetSizes)
	authed.GET("/catalog/sizes/:id", ctrl.Catalog.GetSize)
	adminOnly.POST("/catalog/sizes", ctrl.Catalog.AddSize)
	adminOnly.PUT("/catalog/sizes/:id", ctrl.Catalog.UpdateSize)
	adminOnly.DELETE("/catalog/sizes/:id", ctrl.Catalog.DeleteSize)

	// Reports: generation persists a snapshot per call
	elevated.GET("/reports/daily-sales", ctrl.Report.GenerateDailySalesReport)
	elevated.GET("/reports/monthly-sales", ctrl.Report.GenerateMonthlySalesReport)
	elevated.GET("/reports/top-products", ctrl.Report.GenerateTopProductsReport)
	elevated.GET("/reports", ctrl.Report.GetReports)
	elevated.GET("/reports/:id", ctrl.Report.GetReport)
	elevated.GET("/reports/:id/download", ctrl.Report.DownloadReport)

	// Full-text search index: writes for admins, querying is public
	adminOnly.POST("/products/index/sync", ctrl.Search.SyncIndex)
	adminOnly.POST("/products/index", ctrl.Search.IndexProduct)
	adminOnly.DELETE("/products/index/:id", ctrl.Search.RemoveFromIndex)
	v1.GET("/products/fulltext", ctrl.Search.FullTextSearch)

	// GraphQL and stock subscriptions
	authed.POST("/graphql", graph.Handler(schema))
	v1.GET("/graphql/subscriptions", hub.Subscribe)

	return router
}
