package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/chocobean/storefront/internal/service/services/ordersvc"
	"github.com/chocobean/storefront/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	created      order.Order
	createErr    error
	gotUserID    int64
	gotLines     []orderitem.NewLine
	gotRawStatus string
	updateErr    error
	deleteErr    error
}

func (s *fakeService) Create(ctx context.Context, userID int64, lines []orderitem.NewLine) (order.Order, error) {
	s.gotUserID = userID
	s.gotLines = lines

	return s.created, s.createErr
}

func (s *fakeService) Mine(ctx context.Context, userID int64) ([]order.Order, error) {
	s.gotUserID = userID
	return []order.Order{s.created}, nil
}

func (s *fakeService) All(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	return []order.Order{s.created}, nil
}

func (s *fakeService) Get(ctx context.Context, orderID, userID int64) (order.Order, error) {
	return s.created, nil
}

func (s *fakeService) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (order.Order, error) {
	s.gotRawStatus = rawStatus
	if s.updateErr != nil {
		return order.Order{}, s.updateErr
	}

	updated := s.created
	st, err := order.ParseStatus(rawStatus)
	if err != nil {
		return order.Order{}, err
	}
	updated.Status = st

	return updated, nil
}

func (s *fakeService) Delete(ctx context.Context, orderID, userID int64) error {
	s.gotUserID = userID
	return s.deleteErr
}

func sampleOrder() order.Order {
	return order.Order{
		ID:         1000,
		UserID:     7,
		UserName:   "dana",
		OrderDate:  time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		TotalPrice: decimal.RequireFromString("40.00"),
		Status:     order.StatusReceived,
		Items: []orderitem.OrderItem{
			{ProductID: 1, ProductName: "שוקולד אגוזים", Quantity: 2, Price: decimal.RequireFromString("20.00")},
		},
	}
}

func authedRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := middleware.WithClaims(req.Context(), &auth.Claims{UserID: 7})

	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateHandler(t *testing.T) {
	t.Parallel()

	svc := &fakeService{created: sampleOrder()}

	req := authedRequest(http.MethodPost, "/api/orders", `{"items":[{"productId":1,"quantity":2}]}`)
	rec := httptest.NewRecorder()
	Create(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), svc.gotUserID)
	require.Equal(t, []orderitem.NewLine{{ProductID: 1, Quantity: 2}}, svc.gotLines)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "התקבל", body["status"])
	require.Equal(t, float64(40), body["totalPrice"])
}

func TestCreateHandlerRejectsBadBody(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}

	req := authedRequest(http.MethodPost, "/api/orders", `{not json`)
	rec := httptest.NewRecorder()
	Create(rec, req, svc)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateHandlerMapsValidationErrors(t *testing.T) {
	t.Parallel()

	svc := &fakeService{createErr: ordersvc.ErrEmptyOrder}

	req := authedRequest(http.MethodPost, "/api/orders", `{"items":[]}`)
	rec := httptest.NewRecorder()
	Create(rec, req, svc)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusHandlerDecodesRawString(t *testing.T) {
	t.Parallel()

	svc := &fakeService{created: sampleOrder()}

	req := withURLParam(authedRequest(http.MethodPut, "/api/orders/1000/status", `"Paid"`), "orderId", "1000")
	rec := httptest.NewRecorder()
	UpdateStatus(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Paid", svc.gotRawStatus)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "שולם", body["status"])
}

func TestUpdateStatusHandlerInvalidStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeService{created: sampleOrder()}

	req := withURLParam(authedRequest(http.MethodPut, "/api/orders/1000/status", `"Shipped"`), "orderId", "1000")
	rec := httptest.NewRecorder()
	UpdateStatus(rec, req, svc)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandlerNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeService{deleteErr: order.ErrOrderNotFound}

	req := withURLParam(authedRequest(http.MethodDelete, "/api/orders/9999", ""), "orderId", "9999")
	rec := httptest.NewRecorder()
	Delete(rec, req, svc)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHandlerOK(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}

	req := withURLParam(authedRequest(http.MethodDelete, "/api/orders/1000", ""), "orderId", "1000")
	rec := httptest.NewRecorder()
	Delete(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), svc.gotUserID)
}
