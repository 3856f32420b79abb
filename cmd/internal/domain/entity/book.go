package entity

type Book struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Title     string `gorm:"not null"`
	Year      int    `gorm:"not null"`
	AuthorID  int64  `gorm:"not null;index"`
	Version   int64  `gorm:"not null;default:0"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
