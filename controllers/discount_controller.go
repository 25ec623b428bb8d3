package controllers

import (
	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// DiscountController handles discount definitions
type DiscountController struct {
	discounts repository.DiscountRepository
	cache     *cache.ResponseCache
}

// NewDiscountController creates the discount controller
func NewDiscountController(discounts repository.DiscountRepository, responseCache *cache.ResponseCache) *DiscountController {
	return &DiscountController{discounts: discounts, cache: responseCache}
}

func validDiscount(amount float64, percentage *float64) (string, bool) {
	if amount < 0 {
		return "amount must not be negative", false
	}
	if percentage != nil && (*percentage < 0 || *percentage > 100) {
		return "percentage must be between 0 and 100", false
	}
	return "", true
}

// GetDiscounts lists every discount
func (dc *DiscountController) GetDiscounts(c *gin.Context) {
	utils.LogInfo("GetDiscounts called")

	discounts, err := dc.discounts.GetAll()
	if err != nil {
		utils.LogError("GetDiscounts: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve discounts", nil)
		return
	}
	utils.Success(c, "Discounts retrieved", discounts)
}

// GetDiscount returns one discount
func (dc *DiscountController) GetDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetDiscount called id=%d", id)

	discount, err := dc.discounts.GetByID(id)
	if err != nil {
		utils.LogError("GetDiscount: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve discount", nil)
		return
	}
	if discount == nil {
		utils.NotFound(c, "Discount not found")
		return
	}
	utils.Success(c, "Discount retrieved", discount)
}

// AddDiscount creates a discount
func (dc *DiscountController) AddDiscount(c *gin.Context) {
	utils.LogInfo("AddDiscount called")

	var req dto.AddDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid discount data", err.Error())
		return
	}
	if msg, ok := validDiscount(req.Amount, req.Percentage); !ok {
		utils.BadRequest(c, "Invalid discount data", msg)
		return
	}

	discount := models.Discount{
		Name:           req.Name,
		Amount:         req.Amount,
		Percentage:     req.Percentage,
		ExpirationDate: req.ExpirationDate,
	}
	if err := dc.discounts.Create(&discount); err != nil {
		utils.LogError("AddDiscount: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create discount", nil)
		return
	}

	// Discounted final prices feed cached product views
	dc.cache.Remove(cache.AllProducts)
	utils.LogInfo("AddDiscount: created id=%d", discount.ID)
	utils.Created(c, "Discount created", discount)
}

// UpdateDiscount partially updates a discount; nil fields keep their
// stored values
func (dc *DiscountController) UpdateDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateDiscount called id=%d", id)

	var req dto.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid discount data", err.Error())
		return
	}

	discount, err := dc.discounts.GetByID(id)
	if err != nil {
		utils.LogError("UpdateDiscount: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update discount", nil)
		return
	}
	if discount == nil {
		utils.NotFound(c, "Discount not found")
		return
	}

	if req.Amount != nil {
		discount.Amount = *req.Amount
	}
	if req.Percentage != nil {
		discount.Percentage = req.Percentage
	}
	if req.ExpirationDate != nil {
		discount.ExpirationDate = req.ExpirationDate
	}
	if msg, ok := validDiscount(discount.Amount, discount.Percentage); !ok {
		utils.BadRequest(c, "Invalid discount data", msg)
		return
	}

	if err := dc.discounts.Update(discount); err != nil {
		utils.LogError("UpdateDiscount: update failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update discount", nil)
		return
	}

	dc.cache.Remove(cache.AllProducts)
	utils.LogInfo("UpdateDiscount: updated id=%d", id)
	utils.Success(c, "Discount updated", discount)
}

// DeleteDiscount removes a discount
func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteDiscount called id=%d", id)

	discount, err := dc.discounts.GetByID(id)
	if err != nil {
		utils.LogError("DeleteDiscount: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete discount", nil)
		return
	}
	if discount == nil {
		utils.NotFound(c, "Discount not found")
		return
	}

	if err := dc.discounts.Delete(id); err != nil {
		utils.LogError("DeleteDiscount: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete discount", nil)
		return
	}

	dc.cache.Remove(cache.AllProducts)
	utils.LogInfo("DeleteDiscount: deleted id=%d", id)
	utils.Success(c, "Discount deleted", nil)
}
