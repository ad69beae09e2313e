// Package handler exposes the checker pipeline over HTTP for the service
// mode.
package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akvise/trends-checker/internal/config"
	"github.com/akvise/trends-checker/pkg/checker"
	"github.com/akvise/trends-checker/pkg/keywords"
	"github.com/akvise/trends-checker/pkg/logger"
	"github.com/akvise/trends-checker/pkg/trends"
)

// Controller serves on-demand trends checks. Each request runs the same
// strictly sequential pipeline the CLI uses, parameterized by query
// arguments over the server's base configuration.
type Controller struct {
	base config.Config
	log  *logger.Logger
}

func NewController(base config.Config) *Controller {
	return &Controller{
		base: base,
		log:  logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts the routes on the app.
func (c *Controller) Register(app *fiber.App) {
	app.Get("/healthz", c.Health)
	app.Get("/api/v1/check", c.Check)
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Check runs a trends probe. Query parameters: keywords (CSV), geo (CSV),
// timeframe, related (bool). Unset parameters fall back to the server's
// base configuration.
func (c *Controller) Check(ctx *fiber.Ctx) error {
	cfg := c.base
	if q := ctx.Query("keywords"); q != "" {
		cfg.Keywords = q
		cfg.KeywordsFile = ""
	}
	if q := ctx.Query("geo"); q != "" {
		cfg.Geo = q
	}
	if q := ctx.Query("timeframe"); q != "" {
		cfg.Timeframe = q
	}
	cfg.Related = ctx.QueryBool("related", cfg.Related)

	kws, err := keywords.Resolve(cfg.Keywords, cfg.KeywordsFile)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fetcher := checker.NewTrendsFetcher(kws, cfg.Timeframe, trends.Options{
		HL:      cfg.HL,
		TZ:      0,
		Cookie:  cfg.ResolveCookie(),
		Proxies: trends.NewProxyPool(cfg.Proxy),
	})
	chk := checker.New(checker.Config{
		Keywords: kws,
		Geos:     cfg.Geos(),
		Sleep:    cfg.Sleep,
		Policy: checker.RetryPolicy{
			Retries: cfg.Retries,
			Backoff: cfg.Backoff,
			Jitter:  cfg.Jitter,
		},
		Related: cfg.Related,
	}, fetcher)

	result, err := chk.Run(ctx.UserContext())
	if err != nil {
		if errors.Is(err, checker.ErrNoData) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no summary data produced"})
		}
		c.log.WithError(err).Error("check failed")
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}
