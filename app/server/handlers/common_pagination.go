package handlers

import (
	"math"
	"strconv"

	"post-board/app/server/apperr"

	"github.com/labstack/echo/v4"
)

// queryUint 参数不存在时返回 nil
func queryUint(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperr.ValidationFields(map[string]string{name: "must be a non-negative integer"})
	}

	u := uint(v)
	return &u, nil
}

func (a *App) parsePagination(page *uint, limit *uint) (bool, int, int) {
	if page != nil && *page == 0 && limit != nil && *limit == 0 {
		// 特殊参数：展示全部
		return true, -1, -1
	}
	// 映射前：第几页，每页限制多少个
	// 映射后：页从 1 开始，限制不超过 100
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 1
	} else if *page > math.MaxInt {
		parsedPage = math.MaxInt
	} else {
		parsedPage = *page
	}

	if limit == nil || *limit <= 0 || *limit > 100 {
		parsedLimit = 100
	} else {
		parsedLimit = *limit
	}

	return false, int(parsedPage), int(parsedLimit)
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}
