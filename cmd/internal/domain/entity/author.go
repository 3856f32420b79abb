package entity

type Author struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	// Avatar is the storage key of the uploaded picture, empty until one is set.
	Avatar    string  `gorm:"not null;default:''"`
	Books     []*Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Version   int64   `gorm:"not null;default:0"`
	CreatedAt int64   `gorm:"not null"`
	UpdatedAt int64   `gorm:"not null;autoUpdateTime:false"`
}
