// Package pagination implements the shared page/limit contract: parameters
// come from x-page/x-limit headers first, then page/limit query params, and
// every paginated response echoes its meta in x-* headers.
package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
	Skip  int
}

type Meta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// FromRequest reads pagination parameters, headers taking priority over query
// params. Page defaults to 1, limit is clamped to [1, MaxLimit].
func FromRequest(c fiber.Ctx) Params {
	page := firstPositive([]string{c.Get("x-page"), c.Query("page")}, 1)
	limit := firstPositive([]string{c.Get("x-limit"), c.Query("limit")}, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func NewPage[T any](data []T, page, limit, total int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Meta: NewMeta(page, limit, total)}
}

// SetHeaders mirrors the meta into the x-page/x-limit/x-total/x-total-pages
// response headers.
func SetHeaders(c fiber.Ctx, meta Meta) {
	c.Set("x-page", strconv.Itoa(meta.Page))
	c.Set("x-limit", strconv.Itoa(meta.Limit))
	c.Set("x-total", strconv.Itoa(meta.Total))
	c.Set("x-total-pages", strconv.Itoa(meta.TotalPages))
}

func firstPositive(values []string, fallback int) int {
	for _, v := range values {
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
