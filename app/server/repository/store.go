// Package repository 封装对关系数据库的 CRUD 与分页查询，错误统一转换为 apperr 分类。
package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"post-board/app/server/apperr"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Scope = func(*gorm.DB) *gorm.DB

type PageQuery struct {
	Page     int    // 从 1 开始
	PageSize int    // 每页数量
	OrderBy  string // 排序字段（JSON 名称），必须在白名单中
	Desc     bool
}

type Page[M any] struct {
	List  []M
	Total int64
}

type BatchResult struct {
	Deleted []uint
	Missing []uint
}

// Store 是单一模型的通用仓库，方法不能有类型形参，所以类型形参放在结构体上
type Store[M any] struct {
	db       *gorm.DB
	name     string            // 出现在 NotFound 消息里
	sortable map[string]string // JSON 字段名 -> 列名
}

func NewStore[M any](db *gorm.DB, name string, sortable map[string]string) *Store[M] {
	return &Store[M]{
		db:       db,
		name:     name,
		sortable: sortable,
	}
}

func (s *Store[M]) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(s.name + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(s.name + " already exists")
	default:
		return apperr.Internal(fmt.Errorf("%s: %w", s.name, err))
	}
}

func (s *Store[M]) Create(ctx context.Context, m *M) error {
	return s.translate(s.db.WithContext(ctx).Create(m).Error)
}

// FindAll 不分页，只适合数据量很小的场景
func (s *Store[M]) FindAll(ctx context.Context, scopes ...Scope) ([]M, error) {
	list := []M{}
	if err := s.db.WithContext(ctx).Scopes(scopes...).Order("id ASC").Find(&list).Error; err != nil {
		return nil, s.translate(err)
	}
	return list, nil
}

func (s *Store[M]) FindOne(ctx context.Context, id uint) (*M, error) {
	var m M
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, s.translate(err)
	}
	return &m, nil
}

// FindPage 超出范围的页返回空列表而不是错误
func (s *Store[M]) FindPage(ctx context.Context, q PageQuery, scopes ...Scope) (*Page[M], error) {
	order, err := s.orderClause(q)
	if err != nil {
		return nil, err
	}

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	} else if size > MaxPageSize {
		size = MaxPageSize
	}

	result := &Page[M]{List: []M{}}

	// 偏移量会溢出的页码一定在最后一页之后
	pastEnd := page-1 > math.MaxInt/size

	// 列表和总数并发查询
	g, gctx := errgroup.WithContext(ctx)
	query := func() *gorm.DB {
		return s.db.WithContext(gctx).Model(new(M)).Scopes(scopes...)
	}

	g.Go(func() error {
		if pastEnd {
			return nil
		}
		return query().Order(order).Limit(size).Offset((page - 1) * size).Find(&result.List).Error
	})
	g.Go(func() error {
		return query().Count(&result.Total).Error
	})

	if err := g.Wait(); err != nil {
		return nil, s.translate(err)
	}

	return result, nil
}

func (s *Store[M]) orderClause(q PageQuery) (string, error) {
	column := "id"
	if q.OrderBy != "" {
		var ok bool
		if column, ok = s.sortable[q.OrderBy]; !ok {
			return "", apperr.ValidationFields(map[string]string{
				"orderBy": "unsupported sort field " + q.OrderBy,
			})
		}
	}

	if q.Desc {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}

// Update 只更新 fields 中给出的列，其余保持不变
func (s *Store[M]) Update(ctx context.Context, id uint, fields map[string]any) (*M, error) {
	m, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(m).Updates(fields).Error; err != nil {
			return nil, s.translate(err)
		}
	}

	return s.FindOne(ctx, id)
}

// Remove 返回删除之前的记录
func (s *Store[M]) Remove(ctx context.Context, id uint) (*M, error) {
	m, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(m).Error; err != nil {
		return nil, s.translate(err)
	}

	return m, nil
}

// DeleteMany 删除存在的记录，不存在的 id 只记入 Missing ，不算失败
func (s *Store[M]) DeleteMany(ctx context.Context, ids []uint) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, apperr.ValidationFields(map[string]string{"ids": "must not be empty"})
	}

	// 去重
	uniq := slices.Clone(ids)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	var found []uint
	if err := s.db.WithContext(ctx).Model(new(M)).Where("id IN ?", uniq).Pluck("id", &found).Error; err != nil {
		return nil, s.translate(err)
	}

	result := &BatchResult{Deleted: []uint{}, Missing: []uint{}}
	if len(found) > 0 {
		if err := s.db.WithContext(ctx).Delete(new(M), found).Error; err != nil {
			return nil, s.translate(err)
		}
	}

	for _, id := range uniq {
		if slices.Contains(found, id) {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.Missing = append(result.Missing, id)
		}
	}

	return result, nil
}
