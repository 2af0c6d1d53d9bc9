package httpapi

import (
	"errors"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-assistant/internal/assistant"
	"github.com/i474232898/weather-assistant/internal/llm"
	"github.com/i474232898/weather-assistant/internal/metrics"
	"github.com/i474232898/weather-assistant/internal/recommend"
	"github.com/i474232898/weather-assistant/internal/store"
	"github.com/i474232898/weather-assistant/internal/weather"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("cuisine", func(fl validator.FieldLevel) bool {
		return slices.Contains(recommend.Cuisines, fl.Field().String())
	})
	if err != nil {
		panic("httpapi: register cuisine validation: " + err.Error())
	}
	return v
}

// Deps are the collaborators the HTTP layer calls into. Recommender and
// Metrics may be nil.
type Deps struct {
	Service     *weather.Service
	Executor    *assistant.Executor
	Recommender *recommend.Recommender
	Metrics     *metrics.Collector
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")
	if deps.Metrics != nil {
		v1.Use(observe(deps.Metrics))
	}

	v1.Get("/weather/report", func(c *fiber.Ctx) error {
		q, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := deps.Service.Report(c.UserContext(), q.toLocation())
		return c.JSON(report)
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		q, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := deps.Service.Latest(q.toLocation())
		if err != nil {
			return lookupError(err, "no weather report for requested location")
		}
		return c.JSON(report)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		reports, err := deps.Service.Recent(loc, req.Limit)
		if err != nil {
			return lookupError(err, "no weather history for requested location")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"limit":    req.Limit,
			"reports":  reports,
		})
	})

	v1.Post("/tasks", func(c *fiber.Ctx) error {
		var req taskRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"result": deps.Executor.HandleInput(c.UserContext(), req.Input),
		})
	})

	v1.Get("/tools", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tools": assistant.Tools()})
	})

	v1.Get("/recommendations/cuisines", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cuisines": recommend.Cuisines})
	})

	v1.Post("/recommendations", func(c *fiber.Ctx) error {
		if deps.Recommender == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, llm.ErrMissingAPIKey.Error())
		}

		var req recommendationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := deps.Recommender.Recommend(c.UserContext(), req.Cuisine)
		if deps.Metrics != nil {
			deps.Metrics.ObserveRecommendation(req.Cuisine, err == nil)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, recommend.ErrorText(err))
		}
		return c.JSON(rec)
	})
}

func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	}
	if errors.Is(err, weather.ErrNoStore) {
		return fiber.NewError(fiber.StatusNotImplemented, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather reports")
}

// observe records request counts and latency per route template.
func observe(m *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		m.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start))
		return err
	}
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	Location string `validate:"required,max=200"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location(l.Location)
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Location = c.Query("location")
	if weather.Location(q.Location).IsEmpty() {
		q.Location = ""
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	Limit    int `validate:"min=1,max=100"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc
	h.Limit = c.QueryInt("limit", 10)

	return validate.Struct(h)
}

type taskRequest struct {
	Input string `json:"input" validate:"required"`
}

type recommendationRequest struct {
	Cuisine string `json:"cuisine" validate:"required,cuisine"`
}
