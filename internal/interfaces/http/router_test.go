package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/application/pos"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	infraredis "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/redis"
	apphttp "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/PuntoVenta-api/pkg/jwt"
)

const adminPassword = "clave-segura-123"

type testServer struct {
	app       *fiber.App
	store     *memory.Store
	companyID string
	token     string
}

// newTestServer arma la API completa sobre el almacén en memoria y devuelve el token del administrador.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithHeld(t, memory.NewHeldOrderStore(), memory.NewLocker())
}

// newTestServerWithHeld igual que newTestServer pero con el almacén de carritos y el candado indicados.
func newTestServerWithHeld(t *testing.T, held pos.HeldOrderStore, locker pos.Locker) *testServer {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	authUC := auth.NewAuthUseCase(store.Users(), store.Roles(), store.Companies(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	boot, err := authUC.Bootstrap(context.Background(), "Tienda Central", "admin@tienda.test", adminPassword)
	require.NoError(t, err)

	saleUC := billing.NewSaleUseCase(store, r.Sales, r.Customers, store.Companies(), nil)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Logger:      zerolog.Nop(),
		JWTSecret:   testJWTSecret,
		AuthUC:      authUC,
		RoleUC:      usecase.NewRoleUseCase(store.Roles(), store.Users()),
		Permissions: usecase.NewPermissionService(store.Roles()),
		CompanyUC:   usecase.NewCompanyUseCase(store.Companies()),
		ItemUC:      usecase.NewItemUseCase(r.Items, store),
		AdjustStock: inventory.NewAdjustStockUseCase(store, r.Items, r.Movements),
		CustomerUC:  usecase.NewCustomerUseCase(r.Customers, r.Sales, r.Payments),
		SupplierUC:  usecase.NewSupplierUseCase(r.Suppliers, r.Purchases, r.Payments),
		ExpenseUC:   usecase.NewExpenseUseCase(store, r.Expenses),
		SaleUC:      saleUC,
		PurchaseUC:  billing.NewPurchaseUseCase(store, r.Purchases, r.Suppliers),
		PaymentUC:   billing.NewPaymentUseCase(store, r.Payments, r.Customers, r.Suppliers),
		StatementUC: ledger.NewStatementUseCase(r.Customers, r.Suppliers, r.Sales, r.Purchases, r.Payments, store.Companies(), nil),
		DashboardUC: analytics.NewDashboardUseCase(store.Reports(), r.Items, r.Customers, r.Suppliers),
		ReportUC:    analytics.NewReportUseCase(store.Reports(), r.Items, r.Customers, r.Suppliers),
		HeldOrderUC: pos.NewHeldOrderUseCase(held, locker, saleUC, 0),
	})

	s := &testServer{app: app, store: store, companyID: boot.CompanyID}
	var login struct {
		Token string `json:"token"`
	}
	resp := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@tienda.test", "password": adminPassword}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s.token = "Bearer " + login.Token
	return s
}

// do envía body como JSON con el token del administrador y decodifica la respuesta en out.
func (s *testServer) do(t *testing.T, method, path string, body, out any) *http.Response {
	t.Helper()
	return s.doAs(t, s.token, method, path, body, out)
}

func (s *testServer) doAs(t *testing.T, token, method, path string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp
}

func (s *testServer) createItem(t *testing.T, sku, qty, price string) string {
	t.Helper()
	var item struct {
		ID string `json:"id"`
	}
	resp := s.do(t, http.MethodPost, "/api/items", map[string]any{
		"name": "Artículo " + sku, "sku": sku, "price": price, "purchase_price": "500", "quantity": qty,
	}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return item.ID
}

func (s *testServer) itemQuantity(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	var item struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	resp := s.do(t, http.MethodGet, "/api/items/"+id, nil, &item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return item.Quantity
}

// ── Ventas ──

func TestCreateSale_ExistenciaInsuficiente_NoModificaNada(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t, "A-1", "3", "1000")

	var errBody struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	resp := s.do(t, http.MethodPost, "/api/sales", map[string]any{
		"items":    []map[string]any{{"item_id": itemID, "quantity": "5"}},
		"payments": []map[string]any{{"amount": "5000", "method": "cash"}},
	}, &errBody)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Contains(t, errBody.Message, "Artículo A-1")
	assert.Contains(t, errBody.Message, "disponible 3")
	assert.True(t, s.itemQuantity(t, itemID).Equal(decimal.NewFromInt(3)))

	var list struct {
		Items []any `json:"items"`
	}
	s.do(t, http.MethodGet, "/api/sales", nil, &list)
	assert.Empty(t, list.Items)
}

func TestCreateSale_DescuentaExistenciaYAsignaCodigo(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t, "A-1", "3", "1000")

	var sale struct {
		Code   string          `json:"code"`
		Status string          `json:"status"`
		Total  decimal.Decimal `json:"total"`
	}
	resp := s.do(t, http.MethodPost, "/api/sales", map[string]any{
		"items":    []map[string]any{{"item_id": itemID, "quantity": "2"}},
		"payments": []map[string]any{{"amount": "2000", "method": "cash"}},
	}, &sale)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SAL-0001", sale.Code)
	assert.Equal(t, "Fulfilled", sale.Status)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(2000)))
	assert.True(t, s.itemQuantity(t, itemID).Equal(decimal.NewFromInt(1)))
}

func TestCreateSale_CuerpoInvalido_Retorna400(t *testing.T) {
	s := newTestServer(t)
	var errBody struct {
		Code string `json:"code"`
	}
	resp := s.do(t, http.MethodPost, "/api/sales", map[string]any{"items": []any{}}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

// ── Estado de cuenta ──

func TestCustomerStatement_VentaACreditoYAbono(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t, "B-1", "10", "1000")

	var customer struct {
		ID string `json:"id"`
	}
	resp := s.do(t, http.MethodPost, "/api/customers", map[string]any{"name": "Ana", "opening_balance": "100"}, &customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/sales", map[string]any{
		"customer_id": customer.ID,
		"items":       []map[string]any{{"item_id": itemID, "quantity": "1"}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/payments/customers", map[string]any{
		"party_id": customer.ID, "amount": "500", "method": "cash",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var st struct {
		OpeningBalance decimal.Decimal `json:"opening_balance"`
		ClosingBalance decimal.Decimal `json:"closing_balance"`
		CurrentBalance decimal.Decimal `json:"current_balance"`
		Entries        []struct {
			Balance decimal.Decimal `json:"balance"`
		} `json:"entries"`
	}
	resp = s.do(t, http.MethodGet, "/api/customers/"+customer.ID+"/statement", nil, &st)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.True(t, st.OpeningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, st.ClosingBalance.Equal(decimal.NewFromInt(600)), st.ClosingBalance.String())
	assert.True(t, st.ClosingBalance.Equal(st.CurrentBalance))
	require.NotEmpty(t, st.Entries)
	assert.True(t, st.Entries[len(st.Entries)-1].Balance.Equal(st.ClosingBalance))
}

func TestCustomerStatement_FechaInvalida_Retorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/customers/x/statement?from=ayer", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Permisos ──

func TestCajero_SinPermisoDeReportes(t *testing.T) {
	s := newTestServer(t)
	cashier, err := s.store.Roles().GetByCompanyAndName(context.Background(), s.companyID, "Cajero")
	require.NoError(t, err)
	require.NotNil(t, cashier)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, s.companyID, cashier.ID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := s.doAs(t, "Bearer "+tok, http.MethodGet, "/api/reports/dashboard", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.doAs(t, "Bearer "+tok, http.MethodGet, "/api/items", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/reports/dashboard", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []map[string]string{
		{"email": "admin@tienda.test", "password": "otra-clave-123"},
		{"email": "nadie@tienda.test", "password": adminPassword},
	} {
		resp := s.doAs(t, "", http.MethodPost, "/api/auth/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, body["email"])
	}
}

// ── Carritos en espera ──

func TestHeldOrder_CheckoutCreaVentaYLiberaCarrito(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t, "C-1", "4", "250")

	var held struct {
		ID string `json:"id"`
	}
	resp := s.do(t, http.MethodPost, "/api/pos/held", map[string]any{
		"note":  "mesa 4",
		"items": []map[string]any{{"item_id": itemID, "quantity": "2"}},
	}, &held)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale struct {
		Code string `json:"code"`
	}
	resp = s.do(t, http.MethodPost, "/api/pos/held/"+held.ID+"/checkout", map[string]any{
		"payments": []map[string]any{{"amount": "500", "method": "card"}},
	}, &sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SAL-0001", sale.Code)
	assert.True(t, s.itemQuantity(t, itemID).Equal(decimal.NewFromInt(2)))

	resp = s.do(t, http.MethodGet, "/api/pos/held/"+held.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHeldOrder_CheckoutEnCursoEnOtraCaja_Retorna409(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := newTestServerWithHeld(t, infraredis.NewHeldOrderStore(client, zerolog.Nop()), infraredis.NewLocker(client))
	itemID := s.createItem(t, "C-2", "4", "250")

	var held struct {
		ID string `json:"id"`
	}
	resp := s.do(t, http.MethodPost, "/api/pos/held", map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": "1"}},
	}, &held)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Otra caja tiene tomado el carrito.
	release, err := infraredis.NewLocker(client).Obtain(context.Background(), "lock:held:"+s.companyID+":"+held.ID, time.Minute)
	require.NoError(t, err)

	checkout := map[string]any{"payments": []map[string]any{{"amount": "250", "method": "cash"}}}
	var body struct {
		Code string `json:"code"`
	}
	resp = s.do(t, http.MethodPost, "/api/pos/held/"+held.ID+"/checkout", checkout, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.True(t, s.itemQuantity(t, itemID).Equal(decimal.NewFromInt(4)))

	require.NoError(t, release(context.Background()))
	resp = s.do(t, http.MethodPost, "/api/pos/held/"+held.ID+"/checkout", checkout, &body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SAL-0001", body.Code)
}
