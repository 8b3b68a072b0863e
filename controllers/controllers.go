// Package controllers contains the HTTP handlers for the storefront API.
// Handlers share a response envelope: failures return
// {"success": false, "error": {"code", "message"}}, successes return
// {"success": true, ...}.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// isDuplicateError reports whether err is a uniqueness-constraint violation.
// Works with both PostgreSQL and SQLite error strings.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// respondStoreError maps an unexpected store failure to the error envelope.
// A request that ran out of its deadline is reported as TIMEOUT so clients
// can tell it apart from validation and auth failures.
func respondStoreError(c *gin.Context, err error, code, message string) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TIMEOUT",
				"message": "Request timed out",
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidationError reports every violated field in one response.
func respondValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Validation failed",
			"fields":  fields,
		},
	})
}
