package http

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"site-analytics-service/internal/config"
	"site-analytics-service/internal/controller"
	"site-analytics-service/internal/logging"
	"site-analytics-service/internal/routes"
)

// Server wraps the Fiber application setup.
type Server struct {
	app *fiber.App
}

// NewServer configures routes and middleware.
func NewServer(appCfg *config.Config, analyticsController controller.AnalyticsController) *Server {
	fiberCfg := fiber.Config{
		DisableStartupMessage: true,
		Prefork:               appCfg.FiberPrefork,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	}
	app := fiber.New(fiberCfg)
	app.Use(recover.New())
	app.Use(accessLog)

	routes.Register(app, analyticsController)

	return &Server{app: app}
}

// accessLog emits one structured line per request.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logging.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

// Listen runs the server on provided addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
