package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trendline/cache"
	"trendline/dto"
	"trendline/middleware"
	"trendline/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeOrderRepo struct {
	nextID uint
	orders map[uint]models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]models.Order{}}
}

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) {
	result := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOrderRepo) Create(order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	for i := range order.OrderItems {
		order.OrderItems[i].OrderID = order.ID
	}
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(id uint, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeOrderRepo) Delete(id uint) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) ByStatus(status string) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if o.Status == status {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ByDateRange(start, end time.Time) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ByCustomerID(customerID string) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ItemsByOrderID(orderID uint) ([]models.OrderItem, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	return o.OrderItems, nil
}

type fakeCustomerRepo struct {
	byUserID map[uint]models.Customer
}

func newFakeCustomerRepo(customers ...models.Customer) *fakeCustomerRepo {
	f := &fakeCustomerRepo{byUserID: map[uint]models.Customer{}}
	for _, c := range customers {
		f.byUserID[c.UserID] = c
	}
	return f
}

func (f *fakeCustomerRepo) GetAll() ([]models.Customer, error) {
	result := make([]models.Customer, 0, len(f.byUserID))
	for _, c := range f.byUserID {
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	for _, c := range f.byUserID {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByUserID(userID uint) (*models.Customer, error) {
	c, ok := f.byUserID[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCustomerRepo) Create(customer *models.Customer) error {
	f.byUserID[customer.UserID] = *customer
	return nil
}

func (f *fakeCustomerRepo) Update(customer *models.Customer) error {
	f.byUserID[customer.UserID] = *customer
	return nil
}

func (f *fakeCustomerRepo) Delete(id string) error {
	for userID, c := range f.byUserID {
		if c.ID == id {
			delete(f.byUserID, userID)
		}
	}
	return nil
}

func authedContext(t *testing.T, method, path string, body interface{}, userID uint, roles []models.Role) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextRoles, roles)
	return c, w
}

type orderEnvelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    dto.OrderDTO `json:"data"`
}

func TestCreateOrderRoundTrip(t *testing.T) {
	orders := newFakeOrderRepo()
	customers := newFakeCustomerRepo(models.Customer{ID: "cust-1", UserID: 7})
	controller := NewOrderController(orders, customers, cache.New())
	roles := []models.Role{models.RoleCustomer}

	req := dto.CreateOrderRequest{OrderItems: []dto.OrderItemDTO{
		{ProductID: 3, Quantity: 2, Price: 19.5},
		{ProductID: 4, Quantity: 1, Price: 5},
	}}
	c, w := authedContext(t, http.MethodPost, "/api/v1/orders", req, 7, roles)
	controller.CreateOrder(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created orderEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.OrderStatusPending, created.Data.Status)
	assert.Equal(t, "cust-1", created.Data.CustomerID)
	require.Len(t, created.Data.OrderItems, 2)

	// Reading the order back returns exactly what was placed
	c, w = authedContext(t, http.MethodGet, "/api/v1/orders/"+strconv.Itoa(int(created.Data.ID)), nil, 7, roles)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(created.Data.ID))}}
	controller.GetOrder(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fetched orderEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.ID, fetched.Data.ID)
	assert.Equal(t, models.OrderStatusPending, fetched.Data.Status)
	assert.Equal(t, req.OrderItems, fetched.Data.OrderItems)
}

func TestCreateOrderWithoutCustomerRecord(t *testing.T) {
	controller := NewOrderController(newFakeOrderRepo(), newFakeCustomerRepo(), cache.New())

	req := dto.CreateOrderRequest{OrderItems: []dto.OrderItemDTO{{ProductID: 1, Quantity: 1, Price: 10}}}
	c, w := authedContext(t, http.MethodPost, "/api/v1/orders", req, 99, []models.Role{models.RoleCustomer})
	controller.CreateOrder(c)

	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestCreateOrderRejectsZeroQuantityItem(t *testing.T) {
	customers := newFakeCustomerRepo(models.Customer{ID: "cust-1", UserID: 7})
	controller := NewOrderController(newFakeOrderRepo(), customers, cache.New())

	req := dto.CreateOrderRequest{OrderItems: []dto.OrderItemDTO{{ProductID: 1, Quantity: 0, Price: 10}}}
	c, w := authedContext(t, http.MethodPost, "/api/v1/orders", req, 7, []models.Role{models.RoleCustomer})
	controller.CreateOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestGetOrderDeniesOtherCustomers(t *testing.T) {
	orders := newFakeOrderRepo()
	customers := newFakeCustomerRepo(
		models.Customer{ID: "cust-1", UserID: 7},
		models.Customer{ID: "cust-2", UserID: 8},
	)
	controller := NewOrderController(orders, customers, cache.New())

	req := dto.CreateOrderRequest{OrderItems: []dto.OrderItemDTO{{ProductID: 1, Quantity: 1, Price: 10}}}
	c, w := authedContext(t, http.MethodPost, "/api/v1/orders", req, 7, []models.Role{models.RoleCustomer})
	controller.CreateOrder(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	c, w = authedContext(t, http.MethodGet, "/api/v1/orders/1", nil, 8, []models.Role{models.RoleCustomer})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	controller.GetOrder(c)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
