package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/pkg/common"
	"go.uber.org/zap"
)

const (
	ApiPrefix   = "/api"
	AppCtxKey   = "appctx"
	SessionName = "inventory_session"

	sessionAuthKey      = "authenticated"
	sessionOperatorKey  = "operator"
	sessionWorkspaceKey = "workspace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// public routes reachable without a session
var publicRoutes = map[string]bool{
	ApiPrefix + "/session": true,
	ApiPrefix + "/login":   true,
}

var server *AdminServer

type AdminServer struct {
	root     *echo.Echo
	api      *echo.Group
	cfg      *config.AppConfig
	shutdown time.Duration
}

// Init builds the global admin server. appCtx is attached to every request
// under AppCtxKey.
func Init(cfg *config.AppConfig, appCtx interface{}) {
	server = NewAdminServer(cfg, appCtx)
}

func NewAdminServer(cfg *config.AppConfig, appCtx interface{}) *AdminServer {
	s := &AdminServer{cfg: cfg, shutdown: 5 * time.Second}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Debug = cfg.System.Debug
	s.root.JSONSerializer = &jsonSerializer{}
	s.root.Validator = &structValidator{validate: validator.New()}

	secret := cfg.Web.SessionSecret
	if secret == "" {
		secret = common.RandomHex(32)
		zap.L().Warn("web.session_secret is empty, using a random secret; sessions will not survive restarts")
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Web.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	s.root.Use(middleware.Recover())
	s.root.Use(requestLogger())
	s.root.Use(session.Middleware(store))
	s.root.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppCtxKey, appCtx)
			return next(c)
		}
	})
	s.api = s.root.Group(ApiPrefix, authGuard)
	return s
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				zap.L().Warn("http request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Debug("http request", fields...)
			return nil
		},
	})
}

func authGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if publicRoutes[c.Path()] || IsAuthenticated(c) {
			return next(c)
		}
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"code":  http.StatusUnauthorized,
			"error": "UNAUTHORIZED",
			"msg":   "Login required",
		})
	}
}

// Echo returns the underlying echo instance of the global server
func Echo() *echo.Echo {
	return server.root
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// Listen serves the global server until ctx is cancelled
func Listen(ctx context.Context) error {
	return server.Listen(ctx)
}

func (s *AdminServer) Listen(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("admin api listening on %s", addr)
		errCh <- s.root.Start(addr)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "admin api")
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		if err := s.root.Shutdown(sctx); err != nil {
			return errors.Wrap(err, "shutdown admin api")
		}
		return nil
	}
}

// Session helpers

func getSession(c echo.Context) *sessions.Session {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		// a cookie signed with an old secret decodes to a fresh session
		zap.L().Debug("session decode failed", zap.Error(err))
	}
	return sess
}

// IsAuthenticated reports the session flag
func IsAuthenticated(c echo.Context) bool {
	sess := getSession(c)
	if sess == nil {
		return false
	}
	v, _ := sess.Values[sessionAuthKey].(bool)
	return v
}

// Operator returns the logged in username, empty without a session
func Operator(c echo.Context) string {
	sess := getSession(c)
	if sess == nil {
		return ""
	}
	v, _ := sess.Values[sessionOperatorKey].(string)
	return v
}

// WorkspaceID returns the view workspace bound to the session
func WorkspaceID(c echo.Context) int64 {
	sess := getSession(c)
	if sess == nil {
		return 0
	}
	v, _ := sess.Values[sessionWorkspaceKey].(int64)
	return v
}

// Login sets the session flag and binds a new workspace id. It returns the
// new id and the id the session carried before, 0 when there was none.
func Login(c echo.Context, operator string) (id, previous int64, err error) {
	sess := getSession(c)
	if sess == nil {
		return 0, 0, errors.New("session unavailable")
	}
	previous, _ = sess.Values[sessionWorkspaceKey].(int64)
	id = common.UUIDint64()
	sess.Values[sessionAuthKey] = true
	sess.Values[sessionOperatorKey] = operator
	sess.Values[sessionWorkspaceKey] = id
	return id, previous, sess.Save(c.Request(), c.Response())
}

// Logout clears the session flag and returns the workspace id it carried
func Logout(c echo.Context) (int64, error) {
	sess := getSession(c)
	if sess == nil {
		return 0, nil
	}
	id, _ := sess.Values[sessionWorkspaceKey].(int64)
	delete(sess.Values, sessionAuthKey)
	delete(sess.Values, sessionOperatorKey)
	delete(sess.Values, sessionWorkspaceKey)
	sess.Options.MaxAge = -1
	return id, sess.Save(c.Request(), c.Response())
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, strings.TrimPrefix(err.Error(), "json: ")).SetInternal(err)
	}
	return nil
}

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
