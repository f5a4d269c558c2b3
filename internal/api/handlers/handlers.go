package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
)

func actorFromLocals(c *fiber.Ctx) domain.Actor {
	userID, _ := c.Locals("user_id").(uint)
	roles, _ := c.Locals("roles").([]string)
	return domain.ActorFromRoles(userID, roles)
}
