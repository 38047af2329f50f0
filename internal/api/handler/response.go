package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// apiResponse is the canonical success envelope.
type apiResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondList(c echo.Context, status int, data any, total int64, page ports.Page) error {
	return c.JSON(status, apiResponse{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Total:   total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: int64(page.Offset+page.Limit) < total,
		},
	})
}

// bindPage normalizes the limit/offset/page query parameters. Out-of-range
// values are rejected rather than silently clamped, and every bad parameter
// is reported in a single error; a "page" parameter is translated to an
// offset when no explicit offset is given.
func bindPage(c echo.Context) (ports.Page, error) {
	page := ports.Page{Limit: defaultLimit, Offset: 0}
	var fields []domain.FieldError

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			fields = append(fields, domain.FieldError{
				Field:   "limit",
				Message: "limit must be an integer between 1 and 100",
			})
		} else {
			page.Limit = limit
		}
	}

	hasOffset := false
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			fields = append(fields, domain.FieldError{
				Field:   "offset",
				Message: "offset must be a non-negative integer",
			})
		} else {
			page.Offset = offset
			hasOffset = true
		}
	}

	if raw := c.QueryParam("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			fields = append(fields, domain.FieldError{
				Field:   "page",
				Message: "page must be a positive integer",
			})
		} else if !hasOffset {
			page.Offset = (p - 1) * page.Limit
		}
	}

	if len(fields) > 0 {
		return page, domain.NewValidationError(fields...)
	}
	return page, nil
}
