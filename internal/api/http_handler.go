package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "storefront_session"

type contextKey string

const sessionStateKey contextKey = "sessionState"

// HTTPHandler binds the per-session state engines to HTTP. It is a pure
// consumer of the engines: every route resolves the caller's session and
// issues the corresponding engine command or read.
type HTTPHandler struct {
	sessions *session.Manager
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewHTTPHandler creates an HTTPHandler over the given session manager.
func NewHTTPHandler(sessions *session.Manager, log *zap.SugaredLogger) *HTTPHandler {
	return &HTTPHandler{
		sessions: sessions,
		validate: validator.New(),
		log:      log,
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing a body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.log.Errorw("failed to encode JSON response", "error", err)
		}
	}
}

// withSession resolves the caller's session from the cookie, creating a
// fresh one (own cart, own catalog engine) when absent or expired. The
// session's mutex is held for the duration of the request so commands from
// one session apply fully before the next; different sessions do not
// contend.
func (h *HTTPHandler) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state *session.State
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			state, _ = h.sessions.Get(cookie.Value)
		}
		if state == nil {
			state = h.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    state.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			h.log.Debugw("session created", "session_id", state.ID)
		}

		state.Mu.Lock()
		defer state.Mu.Unlock()

		ctx := context.WithValue(r.Context(), sessionStateKey, state)
		next(w, r.WithContext(ctx))
	}
}

func sessionState(r *http.Request) *session.State {
	return r.Context().Value(sessionStateKey).(*session.State)
}

// --- Product Handlers ---

// ProductListResponse is the payload for the product listing route.
type ProductListResponse struct {
	Data           []domain.Product `json:"data"`
	ActiveCategory string           `json:"active_category"`
}

// ListProducts returns the session's visible set. The category and q query
// parameters issue the corresponding engine commands first; they are
// mutually exclusive, matching the engine's last-command-wins contract.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	engine := state.Catalog

	params := r.URL.Query()
	hasCategory := params.Has("category")
	hasQuery := params.Has("q")
	if hasCategory && hasQuery {
		h.respondWithError(w, http.StatusBadRequest, "category and q are mutually exclusive")
		return
	}

	switch {
	case hasCategory:
		engine.FilterByCategory(params.Get("category"))
	case hasQuery:
		engine.Search(params.Get("q"))
	}

	visible := engine.Visible()
	if visible == nil {
		visible = []domain.Product{}
	}
	h.respondWithJSON(w, http.StatusOK, ProductListResponse{
		Data:           visible,
		ActiveCategory: engine.ActiveCategory(),
	})
}

// GetProductByID returns one product from the full catalog, regardless of
// the active filter.
func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := sessionState(r).Catalog.ProductByID(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.respondWithError(w, http.StatusNotFound, catalog.ErrProductNotFound.Error())
			return
		}
		h.log.Errorw("product lookup failed", "product_id", productID, "error", err)
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	h.respondWithJSON(w, http.StatusOK, product)
}

// ListCategories returns the filter choices for the category bar: the
// "all" sentinel followed by the catalog's distinct categories.
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := append([]string{catalog.CategoryAll}, sessionState(r).Catalog.Categories()...)
	h.respondWithJSON(w, http.StatusOK, struct {
		Data []string `json:"data"`
	}{Data: categories})
}

// --- Cart Handlers ---

// CartResponse is the cart as rendered: the entries in insertion order
// plus the aggregates recomputed from them.
type CartResponse struct {
	Items     []cart.Entry    `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func cartResponse(c *cart.Cart) CartResponse {
	return CartResponse{
		Items:     c.Entries(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, cartResponse(sessionState(r).Cart))
}

// CartAddInput defines the expected input for adding a product to the cart.
// Quantity defaults to 1 when omitted; zero or negative quantities are
// rejected at this boundary.
type CartAddInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,gte=1"`
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var input CartAddInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	state := sessionState(r)
	product, err := state.Catalog.ProductByID(input.ProductID)
	if err != nil {
		h.respondWithError(w, http.StatusNotFound, catalog.ErrProductNotFound.Error())
		return
	}

	if err := state.Cart.AddItem(product, quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			h.respondWithError(w, http.StatusBadRequest, cart.ErrInvalidQuantity.Error())
			return
		}
		h.log.Errorw("add to cart failed", "product_id", input.ProductID, "error", err)
		h.respondWithError(w, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	h.respondWithJSON(w, http.StatusOK, cartResponse(state.Cart))
}

// CartUpdateInput defines the expected input for setting an entry's
// quantity. Any integer is accepted: zero or less removes the entry.
type CartUpdateInput struct {
	Quantity int `json:"quantity"`
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input CartUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	state := sessionState(r)
	state.Cart.UpdateQuantity(productID, input.Quantity) // no-op on unknown ids
	h.respondWithJSON(w, http.StatusOK, cartResponse(state.Cart))
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	state := sessionState(r)
	state.Cart.RemoveItem(productID) // no-op on unknown ids
	h.respondWithJSON(w, http.StatusOK, cartResponse(state.Cart))
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionState(r).Cart.Clear()
	h.respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Session Handlers ---

// SessionResponse is the login display-state for the current session.
type SessionResponse struct {
	LoggedIn bool         `json:"logged_in"`
	User     *domain.User `json:"user,omitempty"`
}

func sessionResponse(s *session.Session) SessionResponse {
	resp := SessionResponse{LoggedIn: s.LoggedIn()}
	if user, ok := s.User(); ok {
		resp.User = &user
	}
	return resp
}

func (h *HTTPHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, sessionResponse(sessionState(r).Session))
}

// LoginInput defines the expected input for signing a customer in. No
// credential checking happens anywhere; this sets display state only.
type LoginInput struct {
	ID      int64  `json:"id" validate:"required,gt=0"`
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"omitempty,max=512"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	state := sessionState(r)
	state.Session.Login(domain.User{
		ID:      input.ID,
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
	})
	h.respondWithJSON(w, http.StatusOK, sessionResponse(state.Session))
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	state.Session.Logout()
	h.respondWithJSON(w, http.StatusOK, sessionResponse(state.Session))
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.withSession(h.ListProducts))
		r.Get("/products/{productId}", h.withSession(h.GetProductByID))
		r.Get("/categories", h.withSession(h.ListCategories))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.withSession(h.GetCart))
			r.Delete("/", h.withSession(h.ClearCart))
			r.Post("/items", h.withSession(h.AddCartItem))
			r.Put("/items/{productId}", h.withSession(h.UpdateCartItem))
			r.Delete("/items/{productId}", h.withSession(h.RemoveCartItem))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.withSession(h.GetSession))
			r.Post("/login", h.withSession(h.Login))
			r.Post("/logout", h.withSession(h.Logout))
		})
	})
}
