package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/auth"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/circuit_breaker"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/validate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	cartCookieName = "cart_session"
	sessionTTL     = 24 * time.Hour
)

type Handler struct {
	catalogSvc  CatalogService
	cartSvc     CartService
	checkoutSvc CheckoutService
	authSvc     AuthService
	imageSvc    ImageService
	jwtKey      []byte
	log         *zap.Logger
}

func New(catalogSvc CatalogService, cartSvc CartService, checkoutSvc CheckoutService,
	authSvc AuthService, imageSvc ImageService, jwtKey []byte, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc:  catalogSvc,
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
		authSvc:     authSvc,
		imageSvc:    imageSvc,
		jwtKey:      jwtKey,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)

	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.DELETE("/cart/items/:bookId", h.RemoveCartItem)
	api.POST("/cart/items/:bookId/increase", h.IncreaseCartItem)
	api.POST("/cart/items/:bookId/reduce", h.ReduceCartItem)
	api.POST("/cart/checkout", h.Checkout)

	api.POST("/admin/login", h.AdminLogin)
	admin := api.Group("/admin", h.adminAuthMW)
	admin.POST("/books", h.CreateBook)
	admin.PUT("/books/:id", h.UpdateBook)
	admin.DELETE("/books/:id", h.DeleteBook)
	admin.POST("/images", h.UploadImage)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListBooks(c echo.Context) error {
	if c.QueryParam("showAll") == "true" {
		return c.JSON(http.StatusOK, h.catalogSvc.List())
	}
	return c.JSON(http.StatusOK, h.catalogSvc.Search(c.QueryParam("q")))
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cartSvc.Get(h.sessionID(c)))
}

func (h *Handler) AddCartItem(c echo.Context) error {
	var req model.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	cart, err := h.cartSvc.AddItem(h.sessionID(c), req.BookID)
	if err != nil {
		return echo.NewHTTPError(cartStatusCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveCartItem(c echo.Context) error {
	cart, err := h.cartSvc.RemoveItem(h.sessionID(c), c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(cartStatusCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) IncreaseCartItem(c echo.Context) error {
	cart, err := h.cartSvc.IncreaseQuantity(h.sessionID(c), c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(cartStatusCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) ReduceCartItem(c echo.Context) error {
	cart, err := h.cartSvc.ReduceQuantity(h.sessionID(c), c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(cartStatusCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) Checkout(c echo.Context) error {
	cart := h.cartSvc.Get(h.sessionID(c))
	link, err := h.checkoutSvc.Link(cart)
	if err != nil {
		if errors.Is(err, errs.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}

func (h *Handler) AdminLogin(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.authSvc.Authenticate(c.Request().Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, circuit_breaker.ErrOpenCB):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}

	token, err := auth.NewToken(h.jwtKey, req.Email, sessionTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"admin": true})
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.ImageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrMissingImage.Error())
	}

	book := bookFromRequest(req, uuid.NewString())
	if err := h.catalogSvc.Upsert(c.Request().Context(), book); err != nil {
		if errors.Is(err, errs.ErrInvalidBook) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id := c.Param("id")
	prev, err := h.catalogSvc.Get(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	book := bookFromRequest(req, id)
	if book.ImageURL == "" {
		book.ImageURL = prev.ImageURL
	}
	book.CreatedAt = prev.CreatedAt

	if err := h.catalogSvc.Upsert(c.Request().Context(), book); err != nil {
		if errors.Is(err, errs.ErrInvalidBook) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.catalogSvc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrMissingImage.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.imageSvc.Upload(c.Request().Context(), fh.Filename, data)
	if err != nil {
		if errors.Is(err, circuit_breaker.ErrOpenCB) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}

// sessionID reads the cart cookie, minting one on first contact.
func (h *Handler) sessionID(c echo.Context) string {
	if ck, err := c.Cookie(cartCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func cartStatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOutOfStock),
		errors.Is(err, errs.ErrQuantityCap),
		errors.Is(err, errs.ErrBookReserved),
		errors.Is(err, errs.ErrBookSold),
		errors.Is(err, errs.ErrBookUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// bookFromRequest builds a whole record the way the admin form declares it:
// the form quantity is both the remaining stock and the inventory ceiling.
func bookFromRequest(req model.BookRequest, id string) model.Book {
	book := model.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		Condition:     req.Condition,
		Quantity:      req.Quantity,
		TotalQuantity: req.Quantity,
		Availability:  req.Availability,
	}
	if book.Condition == "" {
		book.Condition = model.ConditionNew
	}
	if book.Availability == "" {
		book.Availability = model.AvailabilityAvailable
	}
	return book
}
