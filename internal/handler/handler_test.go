package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/handler"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/auth"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/MichaelMansour256/Diwan-Mansour/internal/handler/mocks"
)

const testSession = "3d1f5c2a-7f0e-4f35-9f2d-0a1b2c3d4e5f"

type mocks struct {
	catalog  *service_mocks.MockCatalogService
	cart     *service_mocks.MockCartService
	checkout *service_mocks.MockCheckoutService
	auth     *service_mocks.MockAuthService
	image    *service_mocks.MockImageService
}

func newTestHandler(t *testing.T) (*handler.Handler, mocks) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	m := mocks{
		catalog:  service_mocks.NewMockCatalogService(c),
		cart:     service_mocks.NewMockCartService(c),
		checkout: service_mocks.NewMockCheckoutService(c),
		auth:     service_mocks.NewMockAuthService(c),
		image:    service_mocks.NewMockImageService(c),
	}
	log := zap.NewExample().Named("test")
	h := handler.New(m.catalog, m.cart, m.checkout, m.auth, m.image, []byte("test-key"), log)
	return h, m
}

func withCartSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: "cart_session", Value: testSession})
	return r
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	book := model.Book{
		ID:            "b1",
		Title:         "The Silent Patient",
		Author:        "Alex Michaelides",
		Price:         250,
		ImageURL:      "https://i.ibb.co/abc/silent.jpg",
		Condition:     model.ConditionNew,
		Quantity:      3,
		TotalQuantity: 3,
		Availability:  model.AvailabilityAvailable,
	}
	bookJSON := `{"id":"b1","title":"The Silent Patient","author":"Alex Michaelides","price":250,"imageUrl":"https://i.ibb.co/abc/silent.jpg","condition":"new","quantity":3,"totalQuantity":3,"availability":"available"}`

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "search by default",
			target: "/books?q=silent",
			mockBehavior: func(m mocks) {
				m.catalog.EXPECT().Search("silent").Return([]model.Book{book})
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[` + bookJSON + `]`,
			},
		},
		{
			name:   "showAll bypasses the listing filter",
			target: "/books?showAll=true",
			mockBehavior: func(m mocks) {
				m.catalog.EXPECT().List().Return([]model.Book{book})
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[` + bookJSON + `]`,
			},
		},
		{
			name:   "empty catalog",
			target: "/books",
			mockBehavior: func(m mocks) {
				m.catalog.EXPECT().Search("").Return([]model.Book{})
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/books", h.ListBooks)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_AddCartItem(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	cart := model.Cart{
		Items: []model.CartLine{
			{BookID: "b1", Title: "The Silent Patient", Price: 250, Quantity: 1},
		},
		TotalPrice: 250,
		TotalCount: 1,
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":"b1"}`,
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().AddItem(testSession, "b1").Return(cart, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"items":[{"bookId":"b1","title":"The Silent Patient","price":250,"quantity":1}],"totalPrice":250,"totalCount":1}`,
			},
		},
		{
			name: "err. out of stock",
			body: `{"bookId":"b1"}`,
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().AddItem(testSession, "b1").Return(model.Cart{}, errs.ErrOutOfStock)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no copies left in stock"}`,
			},
		},
		{
			name: "err. reserved by someone else",
			body: `{"bookId":"b1"}`,
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().AddItem(testSession, "b1").Return(model.Cart{}, errs.ErrBookReserved)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book is reserved by another customer"}`,
			},
		},
		{
			name: "err. unknown book",
			body: `{"bookId":"nope"}`,
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().AddItem(testSession, "nope").Return(model.Cart{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found"}`,
			},
		},
		{
			name:         "err. bookId required",
			body:         `{}`,
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'AddCartItemRequest.BookID' Error:Field validation for 'BookID' failed on the 'required' tag"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/cart/items", h.AddCartItem)

			r := withCartSession(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(tt.body)))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Checkout(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	cart := model.Cart{
		Items: []model.CartLine{
			{BookID: "b1", Title: "The Silent Patient", Price: 250, Quantity: 2},
		},
		TotalPrice: 500,
		TotalCount: 2,
	}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().Get(testSession).Return(cart)
				m.checkout.EXPECT().Link(cart).Return("https://wa.me/201201129135?text=order", nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"url":"https://wa.me/201201129135?text=order"}`,
			},
		},
		{
			name: "err. empty cart",
			mockBehavior: func(m mocks) {
				m.cart.EXPECT().Get(testSession).Return(model.Cart{})
				m.checkout.EXPECT().Link(model.Cart{}).Return("", errs.ErrEmptyCart)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cart is empty"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/cart/checkout", h.Checkout)

			r := withCartSession(httptest.NewRequest(http.MethodPost, "/cart/checkout", http.NoBody))
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_AdminLogin(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantCookie   bool
	}{
		{
			name: "ok",
			body: `{"email":"admin@diwan.shop","password":"secret"}`,
			mockBehavior: func(m mocks) {
				m.auth.EXPECT().
					Authenticate(gomock.Any(), "admin@diwan.shop", "secret").
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"admin":true}`,
			},
			wantCookie: true,
		},
		{
			name: "err. rejected credentials",
			body: `{"email":"admin@diwan.shop","password":"wrong"}`,
			mockBehavior: func(m mocks) {
				m.auth.EXPECT().
					Authenticate(gomock.Any(), "admin@diwan.shop", "wrong").
					Return(errs.ErrInvalidCredentials)
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"invalid credentials"}`,
			},
		},
		{
			name:         "err. email required",
			body:         `{"password":"secret"}`,
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/admin/login", h.AdminLogin)

			r := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))

			var session *http.Cookie
			for _, ck := range w.Result().Cookies() {
				if ck.Name == auth.SessionCookie {
					session = ck
				}
			}
			if !tt.wantCookie {
				require.Nil(t, session)
				return
			}
			require.NotNil(t, session)
			claims, err := auth.ParseToken([]byte("test-key"), session.Value)
			require.NoError(t, err)
			require.Equal(t, "admin@diwan.shop", claims.Email)
		})
	}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"title":"Atomic Habits","author":"James Clear","price":320,"imageUrl":"https://i.ibb.co/abc/habits.jpg","quantity":4}`,
			mockBehavior: func(m mocks) {
				m.catalog.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, book model.Book) error {
						require.NotEmpty(t, book.ID)
						require.Equal(t, "Atomic Habits", book.Title)
						require.Equal(t, 4, book.Quantity)
						require.Equal(t, 4, book.TotalQuantity)
						require.Equal(t, model.ConditionNew, book.Condition)
						require.Equal(t, model.AvailabilityAvailable, book.Availability)
						return nil
					})
			},
			response: response{
				expectedCode: http.StatusCreated,
			},
		},
		{
			name:         "err. image required",
			body:         `{"title":"Atomic Habits","author":"James Clear","price":320,"quantity":4}`,
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cover image is required"}`,
			},
		},
		{
			name:         "err. price must be positive",
			body:         `{"title":"Atomic Habits","author":"James Clear","price":-5,"imageUrl":"https://i.ibb.co/abc/habits.jpg","quantity":4}`,
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'BookRequest.Price' Error:Field validation for 'Price' failed on the 'gt' tag"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/admin/books", h.CreateBook)

			r := httptest.NewRequest(http.MethodPost, "/admin/books", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
