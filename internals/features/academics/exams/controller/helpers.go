package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	s := c.Query(name)
	if s == "" {
		return uuid.Nil, errors.New("missing " + name)
	}
	return uuid.Parse(s)
}
