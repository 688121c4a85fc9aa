package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", paramName, idStr)
	}
	return id, nil
}

// parseInt64Query reads an optional int64 query parameter.
func parseInt64Query(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// stringQuery reads an optional string query parameter.
func stringQuery(ctx *gin.Context, name string) *string {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}
