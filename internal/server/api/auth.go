package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type AuthHandlersParams struct {
	fx.In

	AuthService  *biz.AuthService
	CookieName   string `name:"auth_cookie_name"`
	CookieSecure bool   `name:"auth_cookie_secure"`
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	cookieName := params.CookieName
	if cookieName == "" {
		cookieName = "fulexo_token"
	}

	return &AuthHandlers{
		AuthService:  params.AuthService,
		cookieName:   cookieName,
		cookieSecure: params.CookieSecure,
	}
}

type AuthHandlers struct {
	AuthService *biz.AuthService

	cookieName   string
	cookieSecure bool
}

type SignInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignInResponse struct {
	User  *objects.User `json:"user"`
	Token string        `json:"token"`
}

// SignIn authenticates credentials and issues a session token, both in
// the body and as an http-only cookie.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req SignInRequest
	if !BindJSON(c, &req) {
		return
	}

	user, err := h.AuthService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		Error(c, err)
		return
	}

	token, err := h.AuthService.GenerateToken(ctx, user)
	if err != nil {
		Error(c, errs.Internal(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, 0, "/", "", h.cookieSecure, true)

	OK(c, SignInResponse{User: user, Token: token}, "Signed in")
}

// SignOut clears the session cookie. Tokens themselves stay valid until
// expiry; there is no server-side session state.
func (h *AuthHandlers) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)

	OK(c, nil, "Signed out")
}

// Me returns the authenticated user bound to the request.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := contexts.GetUser(c.Request.Context())
	if !ok {
		Error(c, errs.Authentication("Authentication required"))
		return
	}

	OK(c, user, "")
}
