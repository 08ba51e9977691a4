package httpapi

import (
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

var validate = validator.New()

const (
	msgMoodRequired  = "Mood is required"
	msgInvalidBody   = "Invalid request body"
	msgReadFailed    = "Failed to read moods"
	msgCreateFailed  = "Failed to create mood entry"
	maxCityParamSize = 200
)

// ErrorHandler renders every error as {"error": message}. fiber.Error
// codes are kept, anything else becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, moods *mood.Service, gateway *weather.Gateway) {
	api := app.Group("/api")

	api.Get("/weather/:city", func(c *fiber.Ctx) error {
		city := cityParam(c)
		if city == "" || len(city) > maxCityParamSize {
			// Never fail the weather endpoint; echo what we were given.
			return c.JSON(weather.Fallback(city))
		}
		return c.JSON(gateway.FetchByCity(c.UserContext(), city))
	})

	api.Get("/moods", func(c *fiber.Ctx) error {
		entries, err := moods.List(c.UserContext())
		if err != nil {
			log.Printf("ERROR: listing moods: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, msgReadFailed)
		}
		return c.JSON(entries)
	})

	api.Get("/moods/stats", func(c *fiber.Ctx) error {
		summary, err := moods.Stats(c.UserContext())
		if err != nil {
			log.Printf("ERROR: computing mood stats: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, msgReadFailed)
		}
		return c.JSON(summary)
	})

	api.Post("/moods", func(c *fiber.Ctx) error {
		var req createEntryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
		}

		entry, err := moods.Create(c.UserContext(), req.toInput())
		if err != nil {
			if errors.Is(err, mood.ErrMoodRequired) {
				return fiber.NewError(fiber.StatusBadRequest, msgMoodRequired)
			}
			log.Printf("ERROR: creating mood entry: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, msgCreateFailed)
		}

		return c.Status(fiber.StatusCreated).JSON(entry)
	})
}

// createEntryRequest is the POST /api/moods body.
type createEntryRequest struct {
	Mood    string            `json:"mood" validate:"required"`
	Note    string            `json:"note"`
	Weather *weather.Snapshot `json:"weather"`
}

func (r createEntryRequest) toInput() mood.CreateInput {
	return mood.CreateInput{
		Mood:    mood.Mood(r.Mood),
		Note:    r.Note,
		Weather: r.Weather,
	}
}

// validationMessage turns validator errors into a client-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalidBody
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "Mood" && fe.Tag() == "required":
		return msgMoodRequired
	default:
		return fe.Field() + " is invalid"
	}
}

// cityParam returns the unescaped :city path segment.
func cityParam(c *fiber.Ctx) string {
	raw := c.Params("city")
	city, err := url.PathUnescape(raw)
	if err != nil {
		city = raw
	}
	return strings.TrimSpace(city)
}
