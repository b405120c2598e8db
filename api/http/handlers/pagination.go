package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
)

const maxLimit = 200

// parseLimitOffset reads optional limit/offset query parameters. Zero means
// "not set" and the full result is returned.
func parseLimitOffset(c *fiber.Ctx) (limit, offset int, err error) {
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 || n > maxLimit {
			return 0, 0, fmt.Errorf("%w: limit must be an integer between 1 and %d", employee.ErrInvalidArgument, maxLimit)
		}
		limit = n
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return 0, 0, fmt.Errorf("%w: offset must be a non-negative integer", employee.ErrInvalidArgument)
		}
		offset = n
	}
	return limit, offset, nil
}
