package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// TokenIssuer signs a bearer token for an established session.
type TokenIssuer interface {
	Issue(session domain.Session) (string, error)
}

type AuthHandler struct {
	identity ports.IdentityService
	tokens   TokenIssuer
}

func NewAuthHandler(identity ports.IdentityService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

// Register creates a new account and makes it the current session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.identity.Register(c.Request().Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return respondError(c, err)
	}
	metrics.RegistrationsTotal.WithLabelValues(string(session.Role)).Inc()

	return h.respondSession(c, http.StatusCreated, session)
}

// Login authenticates an account for the given role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and role"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	session, err := h.identity.Login(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return respondError(c, err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return h.respondSession(c, http.StatusOK, session)
}

// Logout ends the current session. Calling it with no session is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.identity.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the instance's current session, or null.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  currentSessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s := h.identity.CurrentSession()
	if s == nil {
		return c.JSON(http.StatusOK, currentSessionResponse{})
	}
	resp := toSessionResponse(s)
	return c.JSON(http.StatusOK, currentSessionResponse{Session: &resp})
}

func (h *AuthHandler) respondSession(c echo.Context, code int, s *domain.Session) error {
	token, err := h.tokens.Issue(*s)
	if err != nil {
		return err
	}
	return c.JSON(code, authResponse{Token: token, Session: toSessionResponse(s)})
}
