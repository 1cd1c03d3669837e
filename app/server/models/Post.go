package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model

	Title     string `gorm:"column:title;not null"`   // 标题
	Content   string `gorm:"column:content;type:text"` // 正文
	Published bool   `gorm:"column:published"`        // 是否已发布

	AuthorID uint `gorm:"column:author_id;index"` // 创建者，只是引用，用户删除后帖子依然保留
}
