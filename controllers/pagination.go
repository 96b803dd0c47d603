package controllers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func newPaginationMeta(page, pageSize int, total int64) *PaginationMeta {
	return &PaginationMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
	}
}
