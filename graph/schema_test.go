package graph

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendline/dto"
	"trendline/models"
)

type fakeProducts struct {
	items  []models.Product
	nextID uint
}

func (f *fakeProducts) GetAll() ([]models.Product, error) { return f.items, nil }

func (f *fakeProducts) GetByID(id uint) (*models.Product, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Create(p *models.Product) error {
	f.nextID++
	p.ID = f.nextID
	f.items = append(f.items, *p)
	return nil
}

func (f *fakeProducts) Update(p *models.Product) error { return nil }
func (f *fakeProducts) Delete(id uint) error           { return nil }

func (f *fakeProducts) FindByCategory(string) ([]models.Product, error)       { return nil, nil }
func (f *fakeProducts) FindByBrand(string) ([]models.Product, error)          { return nil, nil }
func (f *fakeProducts) FindByGender(string) ([]models.Product, error)         { return nil, nil }
func (f *fakeProducts) FindByPriceRange(_, _ float64) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeProducts) FindBySize(string) ([]models.Product, error)  { return nil, nil }
func (f *fakeProducts) FindByColor(string) ([]models.Product, error) { return nil, nil }
func (f *fakeProducts) CountByCategory(string) (int64, error)        { return 0, nil }
func (f *fakeProducts) CountByBrand(string) (int64, error)           { return 0, nil }
func (f *fakeProducts) CountAvailable() (int64, error)               { return 0, nil }
func (f *fakeProducts) CountOutOfStock() (int64, error)              { return 0, nil }
func (f *fakeProducts) Search(dto.SearchParams) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeProducts) GetQuantity(uint) (*dto.ProductQuantityDTO, error) { return nil, nil }
func (f *fakeProducts) UpdateQuantity(uint, int) error                    { return nil }

type fakeCatalog struct {
	brands     map[uint]models.Brand
	categories map[uint]models.Category
	colors     map[uint]models.Color
	sizes      map[uint]models.Size
}

func (f *fakeCatalog) GetBrands() ([]models.Brand, error) { return nil, nil }
func (f *fakeCatalog) GetBrandByID(id uint) (*models.Brand, error) {
	if b, ok := f.brands[id]; ok {
		return &b, nil
	}
	return nil, nil
}
func (f *fakeCatalog) CreateBrand(*models.Brand) error { return nil }
func (f *fakeCatalog) UpdateBrand(*models.Brand) error { return nil }
func (f *fakeCatalog) DeleteBrand(uint) error          { return nil }

func (f *fakeCatalog) GetCategories() ([]models.Category, error) { return nil, nil }
func (f *fakeCatalog) GetCategoryByID(id uint) (*models.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}
func (f *fakeCatalog) CreateCategory(*models.Category) error { return nil }
func (f *fakeCatalog) UpdateCategory(*models.Category) error { return nil }
func (f *fakeCatalog) DeleteCategory(uint) error             { return nil }

func (f *fakeCatalog) GetColors() ([]models.Color, error) { return nil, nil }
func (f *fakeCatalog) GetColorByID(id uint) (*models.Color, error) {
	if c, ok := f.colors[id]; ok {
		return &c, nil
	}
	return nil, nil
}
func (f *fakeCatalog) CreateColor(*models.Color) error { return nil }
func (f *fakeCatalog) UpdateColor(*models.Color) error { return nil }
func (f *fakeCatalog) DeleteColor(uint) error          { return nil }

func (f *fakeCatalog) GetSizes() ([]models.Size, error) { return nil, nil }
func (f *fakeCatalog) GetSizeByID(id uint) (*models.Size, error) {
	if s, ok := f.sizes[id]; ok {
		return &s, nil
	}
	return nil, nil
}
func (f *fakeCatalog) CreateSize(*models.Size) error { return nil }
func (f *fakeCatalog) UpdateSize(*models.Size) error { return nil }
func (f *fakeCatalog) DeleteSize(uint) error         { return nil }

func testDeps() (Dependencies, *fakeProducts) {
	products := &fakeProducts{}
	catalog := &fakeCatalog{
		brands:     map[uint]models.Brand{1: {Name: "Generic"}},
		categories: map[uint]models.Category{1: {Name: "Shoes"}},
		colors:     map[uint]models.Color{1: {Name: "Black"}},
		sizes:      map[uint]models.Size{1: {Label: "M"}},
	}
	return Dependencies{Products: products, Catalog: catalog}, products
}

func TestSchemaBuilds(t *testing.T) {
	deps, _ := testDeps()
	_, err := NewSchema(deps)
	assert.NoError(t, err)
}

func TestProductsQuery(t *testing.T) {
	deps, products := testDeps()
	products.items = []models.Product{
		{Name: "Runner", Price: 100, Quantity: 3, Gender: models.GenderMale},
	}
	products.items[0].ID = 1

	schema, err := NewSchema(deps)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products { id name price finalPrice quantity } }`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	list := data["products"].([]interface{})
	require.Len(t, list, 1)

	first := list[0].(map[string]interface{})
	assert.Equal(t, 1, first["id"])
	assert.Equal(t, "Runner", first["name"])
	assert.Equal(t, 100.0, first["finalPrice"])
}

func TestProductQueryNotFound(t *testing.T) {
	deps, _ := testDeps()
	schema, err := NewSchema(deps)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ product(id: 99) { id } }`,
	})
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "Product not found", result.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", result.Errors[0].Extensions["code"])
}

func TestAddProductValidatesCatalogReferences(t *testing.T) {
	deps, _ := testDeps()
	schema, err := NewSchema(deps)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `mutation {
			addProduct(name: "Runner", price: 100, gender: "Male",
				brandId: 99, categoryId: 1, colorId: 1, sizeId: 1) { id }
		}`,
	})
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "Brand not found", result.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", result.Errors[0].Extensions["code"])
}

func TestAddProductCreates(t *testing.T) {
	deps, products := testDeps()
	schema, err := NewSchema(deps)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `mutation {
			addProduct(name: "Runner", price: 100, quantity: 3, gender: "male",
				brandId: 1, categoryId: 1, colorId: 1, sizeId: 1) { id name gender }
		}`,
	})
	require.Empty(t, result.Errors)
	require.Len(t, products.items, 1)
	assert.Equal(t, models.GenderMale, products.items[0].Gender)

	data := result.Data.(map[string]interface{})
	created := data["addProduct"].(map[string]interface{})
	assert.Equal(t, "Runner", created["name"])
	assert.Equal(t, "Male", created["gender"])
}

func TestAddProductRejectsBadGender(t *testing.T) {
	deps, _ := testDeps()
	schema, err := NewSchema(deps)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `mutation {
			addProduct(name: "Runner", price: 100, gender: "other",
				brandId: 1, categoryId: 1, colorId: 1, sizeId: 1) { id }
		}`,
	})
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "BAD_USER_INPUT", result.Errors[0].Extensions["code"])
}
