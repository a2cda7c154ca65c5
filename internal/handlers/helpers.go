package handlers

import (
	"errors"

	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/m1z23r/drift/pkg/drift"
)

// respondInvalid writes a 400 with the full field list when err is a
// validation error, or a generic bad request otherwise.
func respondInvalid(c *drift.Context, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		_ = c.JSON(400, verr)
		return
	}
	c.BadRequest("invalid request body")
}

func conflict(c *drift.Context, msg string) {
	_ = c.JSON(409, map[string]string{"error": msg})
}

func gone(c *drift.Context, msg string) {
	_ = c.JSON(410, map[string]string{"error": msg})
}
