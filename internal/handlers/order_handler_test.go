package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type fakeOrderRepo struct {
	createdInput  *models.CreateOrderInput
	orders        map[primitive.ObjectID]models.PopulatedOrder
	updatedStatus models.OrderStatus
	updatedMsg    string
	failUpdate    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]models.PopulatedOrder{}}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, input models.CreateOrderInput) (models.Order, models.Payment, error) {
	f.createdInput = &input
	order := models.Order{
		ID:          primitive.NewObjectID(),
		TotalAmount: input.TotalAmount,
		Status:      models.StatusPending,
	}
	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		OrderID:       order.ID,
		Amount:        input.TotalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentToken:  input.PaymentToken,
	}
	return order, payment, nil
}

func (f *fakeOrderRepo) GetOrderDetails(ctx context.Context, orderID primitive.ObjectID) (models.PopulatedOrder, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return models.PopulatedOrder{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.PopulatedOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, message string) (models.Order, error) {
	if f.failUpdate != nil {
		return models.Order{}, f.failUpdate
	}
	f.updatedStatus = status
	f.updatedMsg = message
	return models.Order{ID: orderID, Status: status, CancellationMessage: message}, nil
}

func (f *fakeOrderRepo) CreatePayment(ctx context.Context, orderID primitive.ObjectID, amount float64, method models.PaymentMethod, token string) (models.Payment, error) {
	return models.Payment{ID: primitive.NewObjectID(), OrderID: orderID, Amount: amount, PaymentMethod: method, PaymentToken: token}, nil
}

func (f *fakeOrderRepo) GetPaymentByOrder(ctx context.Context, orderID primitive.ObjectID) (models.Payment, error) {
	return models.Payment{}, repository.ErrPaymentNotFound
}

type fakeMailer struct {
	sent []utils.Mail
	fail bool
}

func (m *fakeMailer) Send(mail utils.Mail) utils.MailResult {
	m.sent = append(m.sent, mail)
	if m.fail {
		return utils.MailResult{Success: false, Message: "Error sending email"}
	}
	return utils.MailResult{Success: true, Message: "Email sent successfully"}
}

func orderRouter(repo repository.OrderRepository, mailer utils.Mailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(repo, mailer)
	router := gin.New()
	router.POST("/orders/create", handler.CreateOrder)
	router.GET("/orders/status/:status", handler.GetOrdersByStatus)
	router.PATCH("/orders/update-status/:orderId", handler.UpdateOrderStatus)
	return router
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"user":        primitive.NewObjectID().Hex(),
		"totalAmount": 59.98,
		"items": []map[string]interface{}{
			{"productId": primitive.NewObjectID().Hex(), "price": 29.99, "quantity": 2},
		},
		"shippingAddress": "1 Main St",
		"billingAddress":  "1 Main St",
		"paymentMethod":   "CREDITCARD",
		"paymentToken":    "tok_abc123",
	}
}

func postJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderSucceeds(t *testing.T) {
	repo := newFakeOrderRepo()
	router := orderRouter(repo, &fakeMailer{})

	w := postJSON(router, http.MethodPost, "/orders/create", validOrderBody())

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.createdInput)
	assert.Equal(t, 59.98, repo.createdInput.TotalAmount)

	var resp struct {
		Data struct {
			Order   models.Order   `json:"order"`
			Payment models.Payment `json:"payment"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.StatusPending, resp.Data.Order.Status)
	assert.Equal(t, resp.Data.Order.ID, resp.Data.Payment.OrderID)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	repo := newFakeOrderRepo()
	router := orderRouter(repo, &fakeMailer{})

	body := validOrderBody()
	body["items"] = []map[string]interface{}{}
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.createdInput)
}

func TestCreateOrderRejectsUserAndGuestTogether(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	body := validOrderBody()
	body["guestUser"] = map[string]string{
		"firstName": "Jane", "lastName": "Doe",
		"email": "jane@example.com", "phoneNumber": "5551234",
	}
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsNeitherUserNorGuest(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	body := validOrderBody()
	delete(body, "user")
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderAcceptsGuestCheckout(t *testing.T) {
	repo := newFakeOrderRepo()
	router := orderRouter(repo, &fakeMailer{})

	body := validOrderBody()
	delete(body, "user")
	body["guestUser"] = map[string]string{
		"firstName": "Jane", "lastName": "Doe",
		"email": "jane@example.com", "phoneNumber": "5551234",
	}
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.createdInput)
	require.NotNil(t, repo.createdInput.GuestUser)
	assert.Equal(t, "jane@example.com", repo.createdInput.GuestUser.Email)
}

func TestCreateOrderRejectsInvalidPaymentMethod(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	body := validOrderBody()
	body["paymentMethod"] = "BARTER"
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsZeroTotal(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	body := validOrderBody()
	body["totalAmount"] = 0
	w := postJSON(router, http.MethodPost, "/orders/create", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+primitive.NewObjectID().Hex(),
		map[string]string{"status": "TELEPORTED"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusCancelledRequiresMessage(t *testing.T) {
	repo := newFakeOrderRepo()
	router := orderRouter(repo, &fakeMailer{})

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+primitive.NewObjectID().Hex(),
		map[string]string{"status": "CANCELLED"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.updatedStatus)
}

func TestUpdateOrderStatusUnknownOrderIs404(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failUpdate = repository.ErrOrderNotFound
	router := orderRouter(repo, &fakeMailer{})

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+primitive.NewObjectID().Hex(),
		map[string]string{"status": "SHIPPED"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusSendsEmail(t *testing.T) {
	repo := newFakeOrderRepo()
	orderID := primitive.NewObjectID()
	repo.orders[orderID] = models.PopulatedOrder{
		ID:        orderID,
		GuestUser: &models.GuestUser{Email: "jane@example.com"},
		Status:    models.StatusShipped,
	}
	mailer := &fakeMailer{}
	router := orderRouter(repo, mailer)

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+orderID.Hex(),
		map[string]string{"status": "SHIPPED"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusShipped, repo.updatedStatus)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].To)
}

func TestUpdateOrderStatusSucceedsWhenEmailFails(t *testing.T) {
	repo := newFakeOrderRepo()
	orderID := primitive.NewObjectID()
	repo.orders[orderID] = models.PopulatedOrder{
		ID:        orderID,
		GuestUser: &models.GuestUser{Email: "jane@example.com"},
	}
	mailer := &fakeMailer{fail: true}
	router := orderRouter(repo, mailer)

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+orderID.Hex(),
		map[string]string{"status": "CANCELLED", "message": "Out of stock"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Out of stock", repo.updatedMsg)
}

func TestUpdateOrderStatusRepoErrorIs500(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failUpdate = errors.New("connection reset")
	router := orderRouter(repo, &fakeMailer{})

	w := postJSON(router, http.MethodPatch, "/orders/update-status/"+primitive.NewObjectID().Hex(),
		map[string]string{"status": "SHIPPED"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetOrdersByStatusRejectsUnknownStatus(t *testing.T) {
	router := orderRouter(newFakeOrderRepo(), &fakeMailer{})

	req := httptest.NewRequest(http.MethodGet, "/orders/status/LOST", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
