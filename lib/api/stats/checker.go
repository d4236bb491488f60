package stats

import (
	"time"

	"github.com/ether/etherpad-todolist/lib/db"
	"github.com/ether/etherpad-todolist/lib/ws"
	"github.com/gofiber/fiber/v2"
)

type DBChecker struct {
	db db.DataStore
}

func (d DBChecker) Name() string {
	return "database"
}

func (d DBChecker) Check() Check {
	err := d.db.Ping()

	if err != nil {
		return Check{
			Status: StatusFail,
			Output: err.Error(),
		}
	}

	return Check{
		Status:     StatusPass,
		Observed:   "ok",
		ObservedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

type RoomChecker struct {
	hub *ws.Hub
}

func (r RoomChecker) Name() string {
	return "documents"
}

func (r RoomChecker) Check() Check {
	return Check{
		Status:   StatusPass,
		Observed: r.hub.ActiveRooms(),
	}
}

// Handler returns the health check endpoint (RFC health check draft).
func Handler(
	version string,
	serviceID string,
	checkers []Checker,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := HealthResponse{
			Status:    StatusPass,
			Version:   version,
			ServiceID: serviceID,
			Checks:    map[string][]Check{},
		}

		httpStatus := fiber.StatusOK

		for _, checker := range checkers {
			check := checker.Check()
			resp.Checks[checker.Name()] = []Check{check}

			switch check.Status {
			case StatusFail:
				resp.Status = StatusFail
				httpStatus = fiber.StatusServiceUnavailable
			case StatusWarn:
				if resp.Status != StatusFail {
					resp.Status = StatusWarn
				}
			}
		}

		return c.Status(httpStatus).JSON(resp)
	}
}
