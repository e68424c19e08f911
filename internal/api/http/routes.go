package httpapi

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/ui"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

// RegisterRoutes wires the page, its form actions and the JSON API into the
// Fiber app. Form actions dispatch one command each and redirect back to the
// page.
func RegisterRoutes(app *fiber.App, frontend *ui.App, gateway weather.Gateway) {
	app.Get("/", func(c *fiber.Ctx) error {
		return renderPage(c, frontend.State())
	})

	app.Post("/search", func(c *fiber.Ctx) error {
		return dispatch(c, frontend, ui.SubmitSearch{Input: c.FormValue("city")})
	})
	app.Post("/history/select", func(c *fiber.Ctx) error {
		return dispatch(c, frontend, ui.SelectHistory{City: c.FormValue("city")})
	})
	app.Post("/history/clear", func(c *fiber.Ctx) error {
		return dispatch(c, frontend, ui.ClearHistory{})
	})
	app.Post("/theme/toggle", func(c *fiber.Ctx) error {
		return dispatch(c, frontend, ui.ToggleTheme{})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snap, err := gateway.FetchWeather(c.UserContext(), c.Query("city"))
		if err != nil {
			return c.Status(statusForKind(weather.KindOf(err))).JSON(errorBody(err))
		}
		return c.JSON(snap)
	})

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(frontend.State())
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"history": frontend.State().History})
	})

	v1.Delete("/history", func(c *fiber.Ctx) error {
		state, err := frontend.ClearHistory()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to clear history")
		}
		return c.JSON(fiber.Map{"history": state.History})
	})
}

func dispatch(c *fiber.Ctx, frontend *ui.App, cmd ui.Command) error {
	// Persistence failures are logged by the app; the page still reflects
	// the in-memory state.
	_, _ = frontend.Dispatch(c.UserContext(), cmd)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func renderPage(c *fiber.Ctx, state ui.State) error {
	var buf bytes.Buffer
	if err := ui.Render(&buf, state); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func errorBody(err error) fiber.Map {
	return fiber.Map{
		"error":   true,
		"kind":    weather.KindOf(err),
		"title":   ui.ErrorTitle(err),
		"message": weather.MessageOf(err),
	}
}

func statusForKind(kind weather.Kind) int {
	switch kind {
	case weather.KindEmptyInput:
		return fiber.StatusBadRequest
	case weather.KindNotFound:
		return fiber.StatusNotFound
	case weather.KindRateLimited:
		return fiber.StatusTooManyRequests
	case weather.KindTimeout:
		return fiber.StatusGatewayTimeout
	case weather.KindNetwork, weather.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}
