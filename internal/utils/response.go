package utils

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListResponse is the paginated list envelope: count plus absolute
// next/previous page URLs, null at either end.
type ListResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// ParsePagination reads and normalizes page/limit query params.
func ParsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// BuildListResponse assembles the list envelope around results,
// preserving the request's query params in the page links.
func BuildListResponse(c *fiber.Ctx, page, limit int, total int64, results interface{}) ListResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	resp := ListResponse{
		Count:   total,
		Results: results,
	}
	if page < totalPages {
		next := pageURL(c, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		resp.Previous = &prev
	}
	return resp
}

func pageURL(c *fiber.Ctx, page int) string {
	q := url.Values{}
	for key, value := range c.Queries() {
		q.Set(key, value)
	}
	q.Set("page", strconv.Itoa(page))
	return c.BaseURL() + c.Path() + "?" + q.Encode()
}
