package repository

import (
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Page is the page/limit pair every list filter embeds.
type Page struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page to >= 1 and limit to 1..200.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
}

func (p Page) paginate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p.Normalize()
		return db.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
	}
}

func likePattern(s string) string {
	return "%" + s + "%"
}
