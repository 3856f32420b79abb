package entity

// User is the account record behind the registration/verification/login flow.
//
// PasswordHash only ever holds the encoded PBKDF2 output, never the
// plaintext, and must not leak into any API response.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false"`
	Username     string `gorm:"not null;uniqueIndex"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;not null"`
	// No default tag: gorm drops zero-valued fields with a default from
	// the INSERT, which would make a stored false unrepresentable.
	IsActive     bool   `gorm:"not null"`
	IsVerified   bool   `gorm:"not null;default:false"`
	LastLogin    int64  `gorm:"not null;default:0"`
	Version      int64  `gorm:"not null;default:0"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}
