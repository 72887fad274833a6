package httpresp

import "github.com/gin-gonic/gin"

type PageResponse[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func Page[T any](c *gin.Context, data []T, total int64, page, perPage int) {
	c.JSON(200, PageResponse[T]{
		Data:    data,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
