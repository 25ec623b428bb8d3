package controllers

import (
	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// CatalogController handles the taxonomy entities: brands, categories,
// colors and sizes. All four share the same CRUD shape.
type CatalogController struct {
	catalog repository.CatalogRepository
	cache   *cache.ResponseCache
}

// NewCatalogController creates the catalog controller
func NewCatalogController(catalog repository.CatalogRepository, responseCache *cache.ResponseCache) *CatalogController {
	return &CatalogController{catalog: catalog, cache: responseCache}
}

// invalidateProducts drops the cached product views that embed catalog
// labels
func (cc *CatalogController) invalidateProducts() {
	cc.cache.Remove(cache.AllProducts)
}

// GetBrands lists every brand
func (cc *CatalogController) GetBrands(c *gin.Context) {
	utils.LogInfo("GetBrands called")
	brands, err := cc.catalog.GetBrands()
	if err != nil {
		utils.LogError("GetBrands: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve brands", nil)
		return
	}
	utils.Success(c, "Brands retrieved", brands)
}

// GetBrand returns one brand
func (cc *CatalogController) GetBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetBrand called id=%d", id)

	brand, err := cc.catalog.GetBrandByID(id)
	if err != nil {
		utils.LogError("GetBrand: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve brand", nil)
		return
	}
	if brand == nil {
		utils.NotFound(c, "Brand not found")
		return
	}
	utils.Success(c, "Brand retrieved", brand)
}

// AddBrand creates a brand; duplicate names conflict
func (cc *CatalogController) AddBrand(c *gin.Context) {
	utils.LogInfo("AddBrand called")
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid brand data", err.Error())
		return
	}

	brand := models.Brand{Name: req.Name}
	if err := cc.catalog.CreateBrand(&brand); err != nil {
		utils.LogError("AddBrand: create failed: %v", err)
		utils.Conflict(c, "Brand could not be created", "the name may already be in use")
		return
	}
	utils.LogInfo("AddBrand: created id=%d", brand.ID)
	utils.Created(c, "Brand created", brand)
}

// UpdateBrand renames a brand
func (cc *CatalogController) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateBrand called id=%d", id)

	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid brand data", err.Error())
		return
	}

	brand, err := cc.catalog.GetBrandByID(id)
	if err != nil {
		utils.LogError("UpdateBrand: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update brand", nil)
		return
	}
	if brand == nil {
		utils.NotFound(c, "Brand not found")
		return
	}

	brand.Name = req.Name
	if err := cc.catalog.UpdateBrand(brand); err != nil {
		utils.LogError("UpdateBrand: update failed id=%d: %v", id, err)
		utils.Conflict(c, "Brand could not be updated", "the name may already be in use")
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Brand updated", brand)
}

// DeleteBrand removes a brand
func (cc *CatalogController) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteBrand called id=%d", id)

	brand, err := cc.catalog.GetBrandByID(id)
	if err != nil {
		utils.LogError("DeleteBrand: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete brand", nil)
		return
	}
	if brand == nil {
		utils.NotFound(c, "Brand not found")
		return
	}

	if err := cc.catalog.DeleteBrand(id); err != nil {
		utils.LogError("DeleteBrand: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete brand", nil)
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Brand deleted", nil)
}

// GetCategories lists every category
func (cc *CatalogController) GetCategories(c *gin.Context) {
	utils.LogInfo("GetCategories called")
	categories, err := cc.catalog.GetCategories()
	if err != nil {
		utils.LogError("GetCategories: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve categories", nil)
		return
	}
	utils.Success(c, "Categories retrieved", categories)
}

// GetCategory returns one category
func (cc *CatalogController) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetCategory called id=%d", id)

	category, err := cc.catalog.GetCategoryByID(id)
	if err != nil {
		utils.LogError("GetCategory: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve category", nil)
		return
	}
	if category == nil {
		utils.NotFound(c, "Category not found")
		return
	}
	utils.Success(c, "Category retrieved", category)
}

// AddCategory creates a category; duplicate names conflict
func (cc *CatalogController) AddCategory(c *gin.Context) {
	utils.LogInfo("AddCategory called")
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid category data", err.Error())
		return
	}

	category := models.Category{Name: req.Name}
	if err := cc.catalog.CreateCategory(&category); err != nil {
		utils.LogError("AddCategory: create failed: %v", err)
		utils.Conflict(c, "Category could not be created", "the name may already be in use")
		return
	}
	utils.LogInfo("AddCategory: created id=%d", category.ID)
	utils.Created(c, "Category created", category)
}

// UpdateCategory renames a category
func (cc *CatalogController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateCategory called id=%d", id)

	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid category data", err.Error())
		return
	}

	category, err := cc.catalog.GetCategoryByID(id)
	if err != nil {
		utils.LogError("UpdateCategory: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}
	if category == nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Name = req.Name
	if err := cc.catalog.UpdateCategory(category); err != nil {
		utils.LogError("UpdateCategory: update failed id=%d: %v", id, err)
		utils.Conflict(c, "Category could not be updated", "the name may already be in use")
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Category updated", category)
}

// DeleteCategory removes a category
func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteCategory called id=%d", id)

	category, err := cc.catalog.GetCategoryByID(id)
	if err != nil {
		utils.LogError("DeleteCategory: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}
	if category == nil {
		utils.NotFound(c, "Category not found")
		return
	}

	if err := cc.catalog.DeleteCategory(id); err != nil {
		utils.LogError("DeleteCategory: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Category deleted", nil)
}

// GetColors lists every color
func (cc *CatalogController) GetColors(c *gin.Context) {
	utils.LogInfo("GetColors called")
	colors, err := cc.catalog.GetColors()
	if err != nil {
		utils.LogError("GetColors: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve colors", nil)
		return
	}
	utils.Success(c, "Colors retrieved", colors)
}

// GetColor returns one color
func (cc *CatalogController) GetColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetColor called id=%d", id)

	color, err := cc.catalog.GetColorByID(id)
	if err != nil {
		utils.LogError("GetColor: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve color", nil)
		return
	}
	if color == nil {
		utils.NotFound(c, "Color not found")
		return
	}
	utils.Success(c, "Color retrieved", color)
}

// AddColor creates a color; duplicate names conflict
func (cc *CatalogController) AddColor(c *gin.Context) {
	utils.LogInfo("AddColor called")
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid color data", err.Error())
		return
	}

	color := models.Color{Name: req.Name}
	if err := cc.catalog.CreateColor(&color); err != nil {
		utils.LogError("AddColor: create failed: %v", err)
		utils.Conflict(c, "Color could not be created", "the name may already be in use")
		return
	}
	utils.LogInfo("AddColor: created id=%d", color.ID)
	utils.Created(c, "Color created", color)
}

// UpdateColor renames a color
func (cc *CatalogController) UpdateColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateColor called id=%d", id)

	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid color data", err.Error())
		return
	}

	color, err := cc.catalog.GetColorByID(id)
	if err != nil {
		utils.LogError("UpdateColor: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update color", nil)
		return
	}
	if color == nil {
		utils.NotFound(c, "Color not found")
		return
	}

	color.Name = req.Name
	if err := cc.catalog.UpdateColor(color); err != nil {
		utils.LogError("UpdateColor: update failed id=%d: %v", id, err)
		utils.Conflict(c, "Color could not be updated", "the name may already be in use")
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Color updated", color)
}

// DeleteColor removes a color
func (cc *CatalogController) DeleteColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteColor called id=%d", id)

	color, err := cc.catalog.GetColorByID(id)
	if err != nil {
		utils.LogError("DeleteColor: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete color", nil)
		return
	}
	if color == nil {
		utils.NotFound(c, "Color not found")
		return
	}

	if err := cc.catalog.DeleteColor(id); err != nil {
		utils.LogError("DeleteColor: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete color", nil)
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Color deleted", nil)
}

// GetSizes lists every size
func (cc *CatalogController) GetSizes(c *gin.Context) {
	utils.LogInfo("GetSizes called")
	sizes, err := cc.catalog.GetSizes()
	if err != nil {
		utils.LogError("GetSizes: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve sizes", nil)
		return
	}
	utils.Success(c, "Sizes retrieved", sizes)
}

// GetSize returns one size
func (cc *CatalogController) GetSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetSize called id=%d", id)

	size, err := cc.catalog.GetSizeByID(id)
	if err != nil {
		utils.LogError("GetSize: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve size", nil)
		return
	}
	if size == nil {
		utils.NotFound(c, "Size not found")
		return
	}
	utils.Success(c, "Size retrieved", size)
}

// AddSize creates a size; duplicate labels conflict
func (cc *CatalogController) AddSize(c *gin.Context) {
	utils.LogInfo("AddSize called")
	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid size data", err.Error())
		return
	}

	size := models.Size{Label: req.Name}
	if err := cc.catalog.CreateSize(&size); err != nil {
		utils.LogError("AddSize: create failed: %v", err)
		utils.Conflict(c, "Size could not be created", "the label may already be in use")
		return
	}
	utils.LogInfo("AddSize: created id=%d", size.ID)
	utils.Created(c, "Size created", size)
}

// UpdateSize relabels a size
func (cc *CatalogController) UpdateSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateSize called id=%d", id)

	var req dto.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid size data", err.Error())
		return
	}

	size, err := cc.catalog.GetSizeByID(id)
	if err != nil {
		utils.LogError("UpdateSize: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update size", nil)
		return
	}
	if size == nil {
		utils.NotFound(c, "Size not found")
		return
	}

	size.Label = req.Name
	if err := cc.catalog.UpdateSize(size); err != nil {
		utils.LogError("UpdateSize: update failed id=%d: %v", id, err)
		utils.Conflict(c, "Size could not be updated", "the label may already be in use")
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Size updated", size)
}

// DeleteSize removes a size
func (cc *CatalogController) DeleteSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteSize called id=%d", id)

	size, err := cc.catalog.GetSizeByID(id)
	if err != nil {
		utils.LogError("DeleteSize: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete size", nil)
		return
	}
	if size == nil {
		utils.NotFound(c, "Size not found")
		return
	}

	if err := cc.catalog.DeleteSize(id); err != nil {
		utils.LogError("DeleteSize: delete failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to delete size", nil)
		return
	}
	cc.invalidateProducts()
	utils.Success(c, "Size deleted", nil)
}
