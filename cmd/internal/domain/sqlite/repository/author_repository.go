package repository

import (
	"bookshelf/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultAuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *DefaultAuthorRepository {
	return &DefaultAuthorRepository{db: db}
}

func (d *DefaultAuthorRepository) FindAll() ([]*entity.Author, error) {
	var authors []*entity.Author
	err := d.db.Preload("Books").Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (d *DefaultAuthorRepository) FindByID(id int64) (*entity.Author, error) {
	var author entity.Author
	err := d.db.Preload("Books").First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (d *DefaultAuthorRepository) Create(author *entity.Author) error {
	return d.db.Create(author).Error
}

// SaveWithVersion compare-and-swaps the author row on its version column,
// see DefaultUserRepository.SaveWithVersion.
func (d *DefaultAuthorRepository) SaveWithVersion(author *entity.Author) error {
	res := d.db.Model(&entity.Author{}).
		Where("id = ? AND version = ?", author.ID, author.Version).
		Updates(map[string]any{
			"first_name": author.FirstName,
			"last_name":  author.LastName,
			"avatar":     author.Avatar,
			"updated_at": author.UpdatedAt,
			"version":    author.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	author.Version++
	return nil
}

func (d *DefaultAuthorRepository) Delete(author *entity.Author) error {
	return d.db.Delete(author).Error
}
