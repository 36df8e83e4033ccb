package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/safar/go-paper-store/internal/database"
	applog "github.com/safar/go-paper-store/internal/log"
	"github.com/safar/go-paper-store/internal/validate"
)

var notFound = []error{
	database.ErrCustomerNotFound,
	database.ErrPaperNotFound,
	database.ErrPropertyNotFound,
	database.ErrOrderNotFound,
}

// respondError maps err onto a status code. Internal details are logged and
// never returned to the client.
func respondError(c *fiber.Ctx, action string, err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		c.Status(fiber.StatusBadRequest)
		applog.Warn(c, action+".invalid", applog.Fields{"errors": verrs.Error()})
		return c.JSON(fiber.Map{"errors": verrs})
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			c.Status(fiber.StatusNotFound)
			applog.Info(c, action+".not_found", applog.Fields{"error": err.Error()})
			return c.JSON(fiber.Map{"error": target.Error()})
		}
	}

	if errors.Is(err, database.ErrPropertyAlreadyAttached) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, action+".fail", err, nil)
	return c.JSON(fiber.Map{"error": validate.Message(validate.InternalServerError)})
}

// ErrorHandler is the app-level fallback for errors that escape a handler,
// such as unmatched routes and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"error": validate.Message(validate.InternalServerError)})
}

func badBody() error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	return validate.ParseID(name, c.Params(name))
}
