package types

import (
	"time"

	"post-board/app/server/models"
)

type PostInfo struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  uint      `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewPostInfo(post *models.Post) *PostInfo {
	return &PostInfo{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func NewPostList(posts []models.Post) []PostInfo {
	list := make([]PostInfo, 0, len(posts))
	for i := range posts {
		list = append(list, *NewPostInfo(&posts[i]))
	}
	return list
}

type PostCreateRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// PostUpdateRequest 中为 nil 的字段保持不变
type PostUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type PostFilterInput struct {
	Keyword   string `json:"keyword" validate:"max=200"`
	AuthorID  *uint  `json:"authorId" validate:"omitempty,gt=0"`
	Published *bool  `json:"published"`
}

type PostPageRequest struct {
	Page     int              `json:"page" validate:"required,min=1"`
	PageSize int              `json:"pageSize" validate:"required,min=1,max=100"`
	OrderBy  string           `json:"orderBy" validate:"omitempty,oneof=id createdAt updatedAt title"`
	Order    string           `json:"order" validate:"omitempty,oneof=asc desc"`
	Filter   *PostFilterInput `json:"filter"`
}
