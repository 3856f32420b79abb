package repository

import (
	"bookshelf/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

// ErrStaleRecord is returned by the versioned save methods when the row
// changed between read and write. The caller is expected to retry.
var ErrStaleRecord = errors.New("record was modified by another writer")

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindActiveByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindActiveByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindActiveByID(id int64) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) Create(user *entity.User) error {
	return u.db.Create(user).Error
}

// SaveWithVersion writes the user's mutable columns back with a
// compare-and-swap on the version read earlier. Zero rows affected means
// a concurrent writer got there first; ErrStaleRecord is returned and
// nothing is overwritten.
func (u *DefaultUserRepository) SaveWithVersion(user *entity.User) error {
	res := u.db.Model(&entity.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]any{
			"is_verified": user.IsVerified,
			"is_active":   user.IsActive,
			"last_login":  user.LastLogin,
			"updated_at":  user.UpdatedAt,
			"version":     user.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	user.Version++
	return nil
}
