package controllers

import (
	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/links"
	"trendline/middleware"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// CustomerController handles customer record views and removal
type CustomerController struct {
	customers repository.CustomerRepository
	cache     *cache.ResponseCache
}

// NewCustomerController creates the customer controller
func NewCustomerController(customers repository.CustomerRepository, responseCache *cache.ResponseCache) *CustomerController {
	return &CustomerController{customers: customers, cache: responseCache}
}

// GetCustomers lists every customer record
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	utils.LogInfo("GetCustomers called")

	if cached, ok := cc.cache.Get(cache.AllCustomers); ok {
		if dtos, ok := cached.([]dto.CustomerDTO); ok {
			utils.LogDebug("GetCustomers: cache hit")
			utils.Success(c, "Customers retrieved", dtos)
			return
		}
	}

	customers, err := cc.customers.GetAll()
	if err != nil {
		utils.LogError("GetCustomers: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve customers", nil)
		return
	}

	dtos := dto.NewCustomerDTOs(customers)
	cc.cache.Set(cache.AllCustomers, dtos)
	utils.Success(c, "Customers retrieved", dtos)
}

// GetCustomer returns one customer record. Elevated callers may name any
// customer; a customer only their own record.
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("GetCustomer called id=%s", id)
	roles := middleware.RolesFromContext(c)

	if !links.HasRole(roles, models.RoleAdmin) && !links.HasRole(roles, models.RoleAdvancedUser) {
		caller, err := cc.customers.GetByUserID(middleware.UserIDFromContext(c))
		if err != nil {
			utils.LogError("GetCustomer: caller lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to retrieve customer", nil)
			return
		}
		if caller == nil || caller.ID != id {
			utils.Forbidden(c, "You may only view your own customer record")
			return
		}
	}

	if cached, ok := cc.cache.Get(cache.CustomerKey(id)); ok {
		if d, ok := cached.(dto.CustomerDTO); ok {
			utils.LogDebug("GetCustomer: cache hit id=%s", id)
			utils.Success(c, "Customer retrieved", d)
			return
		}
	}

	customer, err := cc.customers.GetByID(id)
	if err != nil {
		utils.LogError("GetCustomer: query failed id=%s: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve customer", nil)
		return
	}
	if customer == nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	d := dto.NewCustomerDTO(customer)
	cc.cache.Set(cache.CustomerKey(id), d)
	utils.Success(c, "Customer retrieved", d)
}

// UpdateCustomer overwrites the profile fields of a customer record.
// Elevated callers may name any customer; a customer only their own record.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("UpdateCustomer called id=%s", id)
	roles := middleware.RolesFromContext(c)

	if !links.HasRole(roles, models.RoleAdmin) && !links.HasRole(roles, models.RoleAdvancedUser) {
		caller, err := cc.customers.GetByUserID(middleware.UserIDFromContext(c))
		if err != nil {
			utils.LogError("UpdateCustomer: caller lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to update customer", nil)
			return
		}
		if caller == nil || caller.ID != id {
			utils.Forbidden(c, "You may only update your own customer record")
			return
		}
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid customer data", err.Error())
		return
	}

	customer, err := cc.customers.GetByID(id)
	if err != nil {
		utils.LogError("UpdateCustomer: query failed id=%s: %v", id, err)
		utils.InternalServerError(c, "Failed to update customer", nil)
		return
	}
	if customer == nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Address = req.Address
	customer.PhoneNumber = req.PhoneNumber
	if err := cc.customers.Update(customer); err != nil {
		utils.LogError("UpdateCustomer: update failed id=%s: %v", id, err)
		utils.InternalServerError(c, "Failed to update customer", nil)
		return
	}

	cc.cache.Remove(cache.CustomerKey(id), cache.AllCustomers)
	utils.LogInfo("UpdateCustomer: updated id=%s", id)
	utils.Success(c, "Customer updated", dto.NewCustomerDTO(customer))
}

// DeleteCustomer removes a customer record
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("DeleteCustomer called id=%s", id)

	customer, err := cc.customers.GetByID(id)
	if err != nil {
		utils.LogError("DeleteCustomer: query failed id=%s: %v", id, err)
		utils.InternalServerError(c, "Failed to delete customer", nil)
		return
	}
	if customer == nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	if err := cc.customers.Delete(id); err != nil {
		utils.LogError("DeleteCustomer: delete failed id=%s: %v", id, err)
		utils.InternalServerError(c, "Failed to delete customer", nil)
		return
	}

	cc.cache.Remove(cache.CustomerKey(id), cache.AllCustomers, cache.CustomerOrdersKey(id))
	utils.LogInfo("DeleteCustomer: deleted id=%s", id)
	utils.Success(c, "Customer deleted", nil)
}
