// Package graph exposes the read model and product creation over GraphQL,
// with a websocket hub broadcasting stock changes to subscribers. The
// schema is wired by hand against the repositories; there is no generated
// code.
package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"trendline/dto"
	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// Dependencies carries the repositories the resolvers read from
type Dependencies struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Discounts repository.DiscountRepository
	Catalog   repository.CatalogRepository
}

// resolverError carries a machine-readable code into the GraphQL error
// extensions
type resolverError struct {
	message string
	code    string
}

func (e *resolverError) Error() string {
	return e.message
}

// Extensions satisfies gqlerrors.ExtendedError
func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var _ gqlerrors.ExtendedError = (*resolverError)(nil)

func notFound(message string) error {
	return &resolverError{message: message, code: "NOT_FOUND"}
}

func badInput(message string) error {
	return &resolverError{message: message, code: "BAD_USER_INPUT"}
}

// NewSchema builds the executable schema over deps
func NewSchema(deps Dependencies) (graphql.Schema, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"finalPrice": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.ProductDTO)
					return d.FinalPrice, nil
				},
			},
			"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"gender":   &graphql.Field{Type: graphql.String},
			"brand":    &graphql.Field{Type: graphql.String},
			"category": &graphql.Field{Type: graphql.String},
			"color":    &graphql.Field{Type: graphql.String},
			"size":     &graphql.Field{Type: graphql.String},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"productId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					item, _ := p.Source.(dto.OrderItemDTO)
					return item.ProductID, nil
				},
			},
			"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"price":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"customerId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.OrderDTO)
					return d.CustomerID, nil
				},
			},
			"orderDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.OrderDTO)
					return d.OrderDate, nil
				},
			},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"items": &graphql.Field{
				Type: graphql.NewList(orderItemType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.OrderDTO)
					return d.OrderItems, nil
				},
			},
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.String},
			"firstName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.CustomerDTO)
					return d.FirstName, nil
				},
			},
			"lastName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.CustomerDTO)
					return d.LastName, nil
				},
			},
			"address": &graphql.Field{Type: graphql.String},
			"orderCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(dto.CustomerDTO)
					return d.OrderCount, nil
				},
			},
		},
	})

	discountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Discount",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":       &graphql.Field{Type: graphql.String},
			"amount":     &graphql.Field{Type: graphql.Float},
			"percentage": &graphql.Field{Type: graphql.Float},
			"expirationDate": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, _ := p.Source.(models.Discount)
					if d.ExpirationDate == nil {
						return nil, nil
					}
					return *d.ExpirationDate, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := deps.Products.GetAll()
					if err != nil {
						utils.LogError("graphql products: %v", err)
						return nil, err
					}
					return dto.NewProductDTOs(products), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, badInput("id must be a positive integer")
					}
					product, err := deps.Products.GetByID(uint(id))
					if err != nil {
						utils.LogError("graphql product: %v", err)
						return nil, err
					}
					if product == nil {
						return nil, notFound("Product not found")
					}
					return dto.NewProductDTO(product), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orders, err := deps.Orders.GetAll()
					if err != nil {
						utils.LogError("graphql orders: %v", err)
						return nil, err
					}
					return dto.NewOrderDTOs(orders), nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customers, err := deps.Customers.GetAll()
					if err != nil {
						utils.LogError("graphql customers: %v", err)
						return nil, err
					}
					return dto.NewCustomerDTOs(customers), nil
				},
			},
			"discounts": &graphql.Field{
				Type: graphql.NewList(discountType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					discounts, err := deps.Discounts.GetAll()
					if err != nil {
						utils.LogError("graphql discounts: %v", err)
						return nil, err
					}
					return discounts, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"quantity":    &graphql.ArgumentConfig{Type: graphql.Int},
					"gender":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"brandId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"categoryId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"colorId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"sizeId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"discountId":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return addProduct(deps, p)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// addProduct validates every catalog reference before creating; unlike
// the REST handler a dangling reference is rejected here
func addProduct(deps Dependencies, p graphql.ResolveParams) (interface{}, error) {
	name, _ := p.Args["name"].(string)
	description, _ := p.Args["description"].(string)
	price, _ := p.Args["price"].(float64)
	quantity, _ := p.Args["quantity"].(int)
	genderArg, _ := p.Args["gender"].(string)
	brandID, _ := p.Args["brandId"].(int)
	categoryID, _ := p.Args["categoryId"].(int)
	colorID, _ := p.Args["colorId"].(int)
	sizeID, _ := p.Args["sizeId"].(int)

	gender, ok := models.ParseGender(genderArg)
	if !ok {
		return nil, badInput("gender must be Male, Female or Neutral")
	}
	if price < 0 {
		return nil, badInput("price must not be negative")
	}
	if quantity < 0 {
		return nil, badInput("quantity must not be negative")
	}

	brand, err := deps.Catalog.GetBrandByID(uint(brandID))
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, notFound("Brand not found")
	}
	category, err := deps.Catalog.GetCategoryByID(uint(categoryID))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("Category not found")
	}
	color, err := deps.Catalog.GetColorByID(uint(colorID))
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, notFound("Color not found")
	}
	size, err := deps.Catalog.GetSizeByID(uint(sizeID))
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, notFound("Size not found")
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Gender:      gender,
		BrandID:     uint(brandID),
		CategoryID:  uint(categoryID),
		ColorID:     uint(colorID),
		SizeID:      uint(sizeID),
	}
	if raw, ok := p.Args["discountId"].(int); ok {
		discount, err := deps.Discounts.GetByID(uint(raw))
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, notFound("Discount not found")
		}
		discountID := uint(raw)
		product.DiscountID = &discountID
	}

	if err := deps.Products.Create(&product); err != nil {
		utils.LogError("graphql addProduct: create failed: %v", err)
		return nil, err
	}

	created, err := deps.Products.GetByID(product.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, notFound("Product not found")
	}
	utils.LogInfo("graphql addProduct: created id=%d", product.ID)
	return dto.NewProductDTO(created), nil
}
