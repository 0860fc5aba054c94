package repositories

import (
	"errors"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// Page - параметры пагинации. Нулевые значения заменяются значениями по умолчанию в Normalize.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size, defaultSize int) Page {
	p := Page{Number: number, Size: size}
	return p.Normalize(defaultSize)
}

func (p Page) Normalize(defaultSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Size)
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
