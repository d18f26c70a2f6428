package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/docuvia/docuvia-api/internal/utils"
)

// CallerHeader is the header carrying the caller's numeric user id. The
// value is an unverified identity claim, not a credential.
const CallerHeader = "X-User-ID"

const callerIDKey = "caller_id"

// CallerIdentity parses the identity header when present. A malformed value
// is rejected before any handler runs; absence is allowed because most
// endpoints work unscoped.
func CallerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(CallerHeader))
		if raw == "" {
			return c.Next()
		}

		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid identity header")
		}

		c.Locals(callerIDKey, uint(parsed))
		return c.Next()
	}
}

// CallerID returns the caller's user id when the identity header was
// supplied, or nil otherwise.
func CallerID(c *fiber.Ctx) *uint {
	if v := c.Locals(callerIDKey); v != nil {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
