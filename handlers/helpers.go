package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// page/size จาก query string (clamp 1..100 เหมือนกันทุก list)
func pageParams(c echo.Context) (page, size int) {
	page = atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size = atoiOr(c.QueryParam("size"), 20)
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}
	return page, size
}

func listEnvelope(data any, page, size int, total int64) map[string]any {
	return map[string]any{
		"data":  data,
		"page":  page,
		"size":  size,
		"total": total,
	}
}

func authedUserID(c echo.Context) uint {
	uid, _ := c.Get("user_id").(uint)
	return uid
}
