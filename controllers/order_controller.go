package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/links"
	"trendline/middleware"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// OrderController handles order placement, views and status transitions
type OrderController struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	cache     *cache.ResponseCache
}

// NewOrderController creates the order controller
func NewOrderController(orders repository.OrderRepository, customers repository.CustomerRepository, responseCache *cache.ResponseCache) *OrderController {
	return &OrderController{orders: orders, customers: customers, cache: responseCache}
}

// withOrderLinks copies the DTO list and attaches per-role order links
func withOrderLinks(dtos []dto.OrderDTO, roles []models.Role) []dto.OrderDTO {
	result := make([]dto.OrderDTO, len(dtos))
	for i, d := range dtos {
		d.Links = links.ForOrder(d.ID, roles)
		result[i] = d
	}
	return result
}

// GetOrders lists every order
func (oc *OrderController) GetOrders(c *gin.Context) {
	utils.LogInfo("GetOrders called")
	roles := middleware.RolesFromContext(c)

	if cached, ok := oc.cache.Get(cache.AllOrders); ok {
		if dtos, ok := cached.([]dto.OrderDTO); ok {
			utils.LogDebug("GetOrders: cache hit")
			utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
			return
		}
	}

	orders, err := oc.orders.GetAll()
	if err != nil {
		utils.LogError("GetOrders: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve orders", nil)
		return
	}

	dtos := dto.NewOrderDTOs(orders)
	oc.cache.Set(cache.AllOrders, dtos)

	utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
}

// callerCustomer resolves the authenticated caller's customer record;
// nil when the account has none
func (oc *OrderController) callerCustomer(c *gin.Context) (*models.Customer, error) {
	userID := middleware.UserIDFromContext(c)
	if userID == 0 {
		return nil, nil
	}
	return oc.customers.GetByUserID(userID)
}

// GetOrder returns one order. Elevated callers see any order; a customer
// only their own.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetOrder called id=%d", id)
	roles := middleware.RolesFromContext(c)

	order, err := oc.orders.GetByID(id)
	if err != nil {
		utils.LogError("GetOrder: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve order", nil)
		return
	}
	if order == nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if !links.HasRole(roles, models.RoleAdmin) && !links.HasRole(roles, models.RoleAdvancedUser) {
		customer, err := oc.callerCustomer(c)
		if err != nil {
			utils.LogError("GetOrder: customer lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to retrieve order", nil)
			return
		}
		if customer == nil || customer.ID != order.CustomerID {
			utils.Forbidden(c, "You may only view your own orders")
			return
		}
	}

	d := dto.NewOrderDTO(order)
	d.Links = links.ForOrder(d.ID, roles)
	utils.Success(c, "Order retrieved", d)
}

// CreateOrder places an order for the authenticated customer. Item prices
// are taken from the request and snapshotted as-is; the order starts in
// Pending status with the placement time in UTC.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")
	roles := middleware.RolesFromContext(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid order data", err.Error())
		return
	}
	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			utils.BadRequest(c, "Invalid order item", "quantity must be at least 1")
			return
		}
		if item.Price < 0 {
			utils.BadRequest(c, "Invalid order item", "price must not be negative")
			return
		}
	}

	customer, err := oc.callerCustomer(c)
	if err != nil {
		utils.LogError("CreateOrder: customer lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}
	if customer == nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	order := models.Order{
		CustomerID: customer.ID,
		OrderDate:  time.Now().UTC(),
		Status:     models.OrderStatusPending,
	}
	for _, item := range req.OrderItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := oc.orders.Create(&order); err != nil {
		utils.LogError("CreateOrder: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	keys := []string{cache.AllOrders, cache.CustomerOrdersKey(customer.ID)}
	for _, item := range order.OrderItems {
		keys = append(keys, cache.ProductQuantityKey(item.ProductID))
	}
	oc.cache.Remove(keys...)

	utils.LogInfo("CreateOrder: created id=%d customer=%s items=%d", order.ID, customer.ID, len(order.OrderItems))

	d := dto.NewOrderDTO(&order)
	d.Links = links.ForOrder(d.ID, roles)
	utils.Created(c, "Order created", d)
}

// UpdateOrderStatus overwrites the order status as free text
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateOrderStatus called id=%d", id)

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid status data", err.Error())
		return
	}

	if err := oc.orders.UpdateStatus(id, req.Status); err != nil {
		if isRecordNotFound(err) {
			utils.NotFound(c, "Order not found")
			return
		}
		utils.LogError("UpdateOrderStatus: update failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	oc.cache.Remove(cache.OrderKey(id), cache.AllOrders)
	utils.LogInfo("UpdateOrderStatus: updated id=%d status=%s", id, req.Status)
	utils.Success(c, "Order status updated", gin.H{"id": id, "status": req.Status})
}

// DeleteOrder removes an order and its items
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteOrder called id=%d", id)

	order, err := oc.orders.GetByID(id)
	if err != nil {
		utils.LogError("DeleteOrder: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}
	if order == nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := oc.orders.Delete(id); err != nil {
		utils.LogError("DeleteOrder: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}

	keys := []string{cache.OrderKey(id), cache.AllOrders, cache.CustomerOrdersKey(order.CustomerID)}
	for _, item := range order.OrderItems {
		keys = append(keys, cache.ProductQuantityKey(item.ProductID))
	}
	oc.cache.Remove(keys...)

	utils.LogInfo("DeleteOrder: deleted id=%d", id)
	utils.Success(c, "Order deleted", nil)
}

// GetOrdersByStatus lists orders with the given status
func (oc *OrderController) GetOrdersByStatus(c *gin.Context) {
	status := c.Param("status")
	utils.LogInfo("GetOrdersByStatus called status=%s", status)
	roles := middleware.RolesFromContext(c)

	key := cache.OrdersByStatusKey(status)
	if cached, ok := oc.cache.Get(key); ok {
		if dtos, ok := cached.([]dto.OrderDTO); ok {
			utils.LogDebug("GetOrdersByStatus: cache hit status=%s", status)
			utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
			return
		}
	}

	orders, err := oc.orders.ByStatus(status)
	if err != nil {
		utils.LogError("GetOrdersByStatus: query failed status=%s: %v", status, err)
		utils.InternalServerError(c, "Failed to retrieve orders", nil)
		return
	}

	dtos := dto.NewOrderDTOs(orders)
	oc.cache.Set(key, dtos)
	utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
}

// GetOrdersByDateRange lists orders placed within [start, end], both dates
// inclusive and interpreted as whole UTC days
func (oc *OrderController) GetOrdersByDateRange(c *gin.Context) {
	startDate, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		utils.BadRequest(c, "Invalid date range", "startDate must be a yyyy-mm-dd date")
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		utils.BadRequest(c, "Invalid date range", "endDate must be a yyyy-mm-dd date")
		return
	}
	if startDate.After(endDate) {
		utils.BadRequest(c, "Invalid date range", "startDate must not be after endDate")
		return
	}

	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, time.UTC)

	utils.LogInfo("GetOrdersByDateRange called start=%s end=%s", c.Query("startDate"), c.Query("endDate"))
	roles := middleware.RolesFromContext(c)

	key := cache.OrdersByDateRangeKey(start, end)
	if cached, ok := oc.cache.Get(key); ok {
		if dtos, ok := cached.([]dto.OrderDTO); ok {
			utils.LogDebug("GetOrdersByDateRange: cache hit")
			utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
			return
		}
	}

	orders, err := oc.orders.ByDateRange(start, end)
	if err != nil {
		utils.LogError("GetOrdersByDateRange: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve orders", nil)
		return
	}

	dtos := dto.NewOrderDTOs(orders)
	oc.cache.Set(key, dtos)
	utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
}

// GetOrderItems lists the line items of one order
func (oc *OrderController) GetOrderItems(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetOrderItems called id=%d", id)

	order, err := oc.orders.GetByID(id)
	if err != nil {
		utils.LogError("GetOrderItems: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve order items", nil)
		return
	}
	if order == nil {
		utils.NotFound(c, "Order not found")
		return
	}

	items := make([]dto.OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	utils.Success(c, "Order items retrieved", items)
}

// GetCustomerOrders lists a customer's orders. Elevated callers may name
// any customer; a customer only themselves.
func (oc *OrderController) GetCustomerOrders(c *gin.Context) {
	customerID := c.Param("id")
	utils.LogInfo("GetCustomerOrders called customer=%s", customerID)
	roles := middleware.RolesFromContext(c)

	if !links.HasRole(roles, models.RoleAdmin) && !links.HasRole(roles, models.RoleAdvancedUser) {
		caller, err := oc.callerCustomer(c)
		if err != nil {
			utils.LogError("GetCustomerOrders: customer lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to retrieve orders", nil)
			return
		}
		if caller == nil || caller.ID != customerID {
			utils.Forbidden(c, "You may only view your own orders")
			return
		}
	}

	key := cache.CustomerOrdersKey(customerID)
	if cached, ok := oc.cache.Get(key); ok {
		if dtos, ok := cached.([]dto.OrderDTO); ok {
			utils.LogDebug("GetCustomerOrders: cache hit customer=%s", customerID)
			utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
			return
		}
	}

	orders, err := oc.orders.ByCustomerID(customerID)
	if err != nil {
		utils.LogError("GetCustomerOrders: query failed customer=%s: %v", customerID, err)
		utils.InternalServerError(c, "Failed to retrieve orders", nil)
		return
	}

	dtos := dto.NewOrderDTOs(orders)
	oc.cache.Set(key, dtos)
	utils.Success(c, "Orders retrieved", withOrderLinks(dtos, roles))
}
