package repository

import (
	"bookshelf/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultBookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *DefaultBookRepository {
	return &DefaultBookRepository{db: db}
}

func (d *DefaultBookRepository) FindAll() ([]*entity.Book, error) {
	var books []*entity.Book
	err := d.db.Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (d *DefaultBookRepository) FindByID(id int64) (*entity.Book, error) {
	var book entity.Book
	err := d.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (d *DefaultBookRepository) Create(book *entity.Book) error {
	return d.db.Create(book).Error
}

func (d *DefaultBookRepository) SaveWithVersion(book *entity.Book) error {
	res := d.db.Model(&entity.Book{}).
		Where("id = ? AND version = ?", book.ID, book.Version).
		Updates(map[string]any{
			"title":      book.Title,
			"year":       book.Year,
			"updated_at": book.UpdatedAt,
			"version":    book.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	book.Version++
	return nil
}

func (d *DefaultBookRepository) Delete(book *entity.Book) error {
	return d.db.Delete(book).Error
}
