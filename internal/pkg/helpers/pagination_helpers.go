package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ParseLimitSkip extracts limit/skip pagination parameters from the request.
// Invalid or missing values fall back to the defaults (limit 50, skip 0).
func ParseLimitSkip(c *gin.Context) (limit, skip int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	skip, err = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	return limit, skip
}
