package api

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/ChaseHampton/goobituaries/internal/aggregate"
	"github.com/ChaseHampton/goobituaries/internal/config"
	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/page"
	"github.com/ChaseHampton/goobituaries/internal/search"
	"github.com/ChaseHampton/goobituaries/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Obituaries is the read and condolence surface the handlers use.
type Obituaries interface {
	LoadAll(ctx context.Context) aggregate.Stats
	GetByID(id string) (obituary.Obituary, bool)
	GetRecent(limit int) []obituary.Obituary
	Search(p search.Params) []obituary.Obituary
	AddCondolence(ctx context.Context, id string, in obituary.CondolenceInput) bool
	Condolences(ctx context.Context, id string) []obituary.Condolence
}

const (
	minNameLen    = 2
	minMessageLen = 10
	maxRecent     = 50
)

type Server struct {
	app     *fiber.App
	engine  Obituaries
	cfg     config.ServerConfig
	site    string
	limiter *Limiter
	logger  *zap.Logger
}

func NewServer(cfg config.ServerConfig, siteName string, engine Obituaries, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: zap.NewStdLog(logger.Named("http")).Writer(),
	}))
	app.Use(cors.New())

	srv := &Server{
		app:     app,
		engine:  engine,
		cfg:     cfg,
		site:    siteName,
		limiter: NewLimiter(cfg.CondolenceRate, cfg.CondolenceBurst),
		logger:  logger,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api/v1")
	api.Get("/obituaries", s.handleList)
	api.Get("/obituaries/recent", s.handleRecent)
	api.Get("/obituaries/:id", s.handleDetail)
	api.Get("/obituaries/:id/condolences", s.handleListCondolences)
	api.Post("/obituaries/:id/condolences", s.handleAddCondolence)
	api.Post("/reload", s.handleReload)
}

func (s *Server) handleList(c *fiber.Ctx) error {
	p := search.Params{
		City: c.Query("city"),
		Text: c.Query("q"),
	}
	if c.QueryBool("exactCity", false) {
		p.CityMatch = search.CityExact
	}
	perPage := c.QueryInt("perPage", s.cfg.PerPage)
	results := page.Paginate(view.NewCards(s.engine.Search(p)), c.QueryInt("page", 1), perPage)
	return c.JSON(fiber.Map{"data": results})
}

func (s *Server) handleRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 3)
	if limit > maxRecent {
		limit = maxRecent
	}
	cards := view.NewCards(s.engine.GetRecent(limit))
	return c.JSON(fiber.Map{"data": cards, "meta": fiber.Map{"count": len(cards)}})
}

func (s *Server) handleDetail(c *fiber.Ctx) error {
	o, ok := s.engine.GetByID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "obituary not found")
	}
	detail := view.NewDetail(&o, s.engine.Condolences(c.UserContext(), o.ID), s.site)
	return c.JSON(fiber.Map{"data": detail})
}

func (s *Server) handleListCondolences(c *fiber.Ctx) error {
	o, ok := s.engine.GetByID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "obituary not found")
	}
	items := s.engine.Condolences(c.UserContext(), o.ID)
	return c.JSON(fiber.Map{"data": items, "meta": fiber.Map{"count": len(items)}})
}

func (s *Server) handleAddCondolence(c *fiber.Ctx) error {
	var payload obituary.CondolenceInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validateCondolence(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	o, ok := s.engine.GetByID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "obituary not found")
	}
	if !s.limiter.Allow(c.IP()) {
		return fiber.NewError(fiber.StatusTooManyRequests, "too many condolences, try again later")
	}
	if !s.engine.AddCondolence(c.UserContext(), o.ID, payload) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "condolence could not be saved")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"obituaryId": o.ID}})
}

func (s *Server) handleReload(c *fiber.Ctx) error {
	stats := s.engine.LoadAll(c.UserContext())
	return c.JSON(fiber.Map{"data": stats})
}

func validateCondolence(in *obituary.CondolenceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if utf8.RuneCountInString(in.Name) < minNameLen {
		return errors.New("name is required")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return errors.New("email is not valid")
		}
	}
	if utf8.RuneCountInString(in.Message) < minMessageLen {
		return errors.New("message must be at least 10 characters")
	}
	return nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
