package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/webserver"
	"go.uber.org/zap"
)

const (
	viewLogin     = "login"
	viewDashboard = "dashboard"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionState struct {
	Authenticated bool   `json:"authenticated"`
	View          string `json:"view"`
	Username      string `json:"username,omitempty"`
}

func registerAuthRoutes() {
	webserver.ApiGET("/session", getSession)
	webserver.ApiPOST("/login", login)
	webserver.ApiPOST("/logout", logout)
}

func getSession(c echo.Context) error {
	if !webserver.IsAuthenticated(c) {
		return ok(c, sessionState{View: viewLogin})
	}
	return ok(c, sessionState{Authenticated: true, View: viewDashboard, Username: webserver.Operator(c)})
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", err.Error())
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	appCtx := GetAppContext(c)
	if !appCtx.Authenticate(payload.Username, payload.Password) {
		zap.L().Warn("login failed", zap.String("username", payload.Username), zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}

	wsID, previous, err := webserver.Login(c, payload.Username)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to save session", err.Error())
	}
	if previous != 0 {
		appCtx.Workspaces().Close(previous)
	}
	appCtx.Workspaces().Open(wsID)
	appCtx.OprLogs().Record(payload.Username, domain.ActionLogin, "login from "+c.RealIP())
	return ok(c, sessionState{Authenticated: true, View: viewDashboard, Username: payload.Username})
}

func logout(c echo.Context) error {
	operator := webserver.Operator(c)
	wsID, err := webserver.Logout(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to clear session", err.Error())
	}
	appCtx := GetAppContext(c)
	appCtx.Workspaces().Close(wsID)
	appCtx.OprLogs().Record(operator, domain.ActionLogout, "logout")
	return ok(c, sessionState{View: viewLogin})
}
