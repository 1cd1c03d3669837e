package repository

import (
	"context"
	"strings"

	"post-board/app/server/models"

	"gorm.io/gorm"
)

var postSortable = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

// PostFilter 的每个字段都是可选条件，之间是 AND 关系
type PostFilter struct {
	Keyword   string // 标题或正文包含
	AuthorID  *uint
	Published *bool
}

func (f PostFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Keyword != "" {
		db = db.Scopes(containsScope(f.Keyword))
	}
	if f.AuthorID != nil {
		db = db.Where("author_id = ?", *f.AuthorID)
	}
	if f.Published != nil {
		db = db.Where("published = ?", *f.Published)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsScope(substr string) Scope {
	pattern := "%" + likeEscaper.Replace(substr) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`, pattern, pattern)
	}
}

type Posts struct {
	*Store[models.Post]
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{
		Store: NewStore[models.Post](db, "post", postSortable),
	}
}

// Search 匹配标题或正文，大小写是否敏感取决于数据库；空字符串返回全部
func (p *Posts) Search(ctx context.Context, substr string) ([]models.Post, error) {
	if substr == "" {
		return p.FindAll(ctx)
	}
	return p.FindAll(ctx, containsScope(substr))
}

func (p *Posts) FindFilteredPage(ctx context.Context, q PageQuery, f PostFilter) (*Page[models.Post], error) {
	return p.FindPage(ctx, q, f.Scope)
}
