package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trendline/cache"
	"trendline/dto"
	"trendline/links"
	"trendline/middleware"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// ProductController handles product CRUD and single-product views
type ProductController struct {
	products repository.ProductRepository
	cache    *cache.ResponseCache
}

// NewProductController creates the product controller
func NewProductController(products repository.ProductRepository, responseCache *cache.ResponseCache) *ProductController {
	return &ProductController{products: products, cache: responseCache}
}

// parseID reads the :id path parameter; a non-numeric id responds 400 and
// returns false
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// withListLinks copies the DTO list and attaches per-role list links.
// Cached entries never carry links; they are recomputed per request so one
// caller's role set never leaks into another's response.
func withListLinks(dtos []dto.ProductDTO, roles []models.Role) []dto.ProductDTO {
	result := make([]dto.ProductDTO, len(dtos))
	for i, d := range dtos {
		d.Links = links.ForProductList(d.ID, roles)
		result[i] = d
	}
	return result
}

// withSingleLinks copies the DTO and attaches single-product links
func withSingleLinks(d dto.ProductDTO, roles []models.Role) dto.ProductDTO {
	d.Links = links.ForSingleProduct(d.ID, d.Category, d.Brand, d.Gender, d.Size, d.Color, roles)
	return d
}

// GetProducts lists the catalog
func (pc *ProductController) GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")
	roles := middleware.RolesFromContext(c)

	if cached, ok := pc.cache.Get(cache.AllProducts); ok {
		if dtos, ok := cached.([]dto.ProductDTO); ok {
			utils.LogDebug("GetProducts: cache hit")
			utils.Success(c, "Products retrieved", withListLinks(dtos, roles))
			return
		}
	}

	products, err := pc.products.GetAll()
	if err != nil {
		utils.LogError("GetProducts: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve products", nil)
		return
	}

	dtos := dto.NewProductDTOs(products)
	pc.cache.Set(cache.AllProducts, dtos)

	utils.Success(c, "Products retrieved", withListLinks(dtos, roles))
}

// GetProduct returns one product with its navigation links
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetProduct called id=%d", id)
	roles := middleware.RolesFromContext(c)

	if cached, ok := pc.cache.Get(cache.ProductKey(id)); ok {
		if d, ok := cached.(dto.ProductDTO); ok {
			utils.LogDebug("GetProduct: cache hit id=%d", id)
			utils.Success(c, "Product retrieved", withSingleLinks(d, roles))
			return
		}
	}

	product, err := pc.products.GetByID(id)
	if err != nil {
		utils.LogError("GetProduct: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve product", nil)
		return
	}
	if product == nil {
		utils.NotFound(c, "Product not found")
		return
	}

	d := dto.NewProductDTO(product)
	pc.cache.Set(cache.ProductKey(id), d)

	utils.Success(c, "Product retrieved", withSingleLinks(d, roles))
}

// AddProduct creates a product. Catalog references are stored as given;
// a dangling reference surfaces later as an empty label, not an error here.
func (pc *ProductController) AddProduct(c *gin.Context) {
	utils.LogInfo("AddProduct called")

	var req dto.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product data", err.Error())
		return
	}

	gender, ok := models.ParseGender(req.Gender)
	if !ok {
		utils.BadRequest(c, "Invalid gender", "gender must be Male, Female or Neutral")
		return
	}
	if req.Price < 0 {
		utils.BadRequest(c, "Invalid price", "price must not be negative")
		return
	}
	if req.Quantity < 0 {
		utils.BadRequest(c, "Invalid quantity", "quantity must not be negative")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Gender:      gender,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
		ColorID:     req.ColorID,
		SizeID:      req.SizeID,
		DiscountID:  req.DiscountID,
	}

	if err := pc.products.Create(&product); err != nil {
		utils.LogError("AddProduct: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	pc.invalidate(product.ID)
	utils.LogInfo("AddProduct: created id=%d", product.ID)

	created, err := pc.products.GetByID(product.ID)
	if err != nil || created == nil {
		utils.Created(c, "Product created", gin.H{"id": product.ID})
		return
	}
	utils.Created(c, "Product created", dto.NewProductDTO(created))
}

// EditProduct overwrites a product's attributes
func (pc *ProductController) EditProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("EditProduct called id=%d", id)

	var req dto.EditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product data", err.Error())
		return
	}

	gender, ok := models.ParseGender(req.Gender)
	if !ok {
		utils.BadRequest(c, "Invalid gender", "gender must be Male, Female or Neutral")
		return
	}
	if req.Price < 0 {
		utils.BadRequest(c, "Invalid price", "price must not be negative")
		return
	}

	product, err := pc.products.GetByID(id)
	if err != nil {
		utils.LogError("EditProduct: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}
	if product == nil {
		utils.NotFound(c, "Product not found")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Gender = gender
	product.BrandID = req.BrandID
	product.CategoryID = req.CategoryID
	product.ColorID = req.ColorID
	product.SizeID = req.SizeID

	if err := pc.products.Update(product); err != nil {
		utils.LogError("EditProduct: update failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	pc.invalidate(id)
	utils.LogInfo("EditProduct: updated id=%d", id)

	updated, err := pc.products.GetByID(id)
	if err != nil || updated == nil {
		utils.Success(c, "Product updated", gin.H{"id": id})
		return
	}
	utils.Success(c, "Product updated", dto.NewProductDTO(updated))
}

// DeleteProduct removes a product
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteProduct called id=%d", id)

	product, err := pc.products.GetByID(id)
	if err != nil {
		utils.LogError("DeleteProduct: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}
	if product == nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := pc.products.Delete(id); err != nil {
		utils.LogError("DeleteProduct: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	pc.invalidate(id)
	utils.LogInfo("DeleteProduct: deleted id=%d", id)
	utils.Success(c, "Product deleted", nil)
}

// invalidate drops the per-id key plus the aggregate keys a product
// mutation can stale
func (pc *ProductController) invalidate(id uint) {
	pc.cache.Remove(
		cache.ProductKey(id),
		cache.ProductQuantityKey(id),
		cache.AllProducts,
		cache.CountAvailableKey,
		cache.CountOutOfStockKey,
	)
}
