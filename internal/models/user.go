package models

import "time"

// User is the account row shared by customers, professionals and admins.
// Password may hold either a bcrypt hash or a legacy plaintext value; see
// internal/auth and the password migration worker.
type User struct {
	BaseModel
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	FullName   string     `gorm:"not null" json:"full_name"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address,omitempty"`
	Role       UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status     UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	LastActive *time.Time `json:"last_active,omitempty"`

	// Relations
	Professional *Professional `gorm:"foreignKey:UserID" json:"professional,omitempty"`
}
