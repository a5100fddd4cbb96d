package models

// Professional is the one-to-one extension row created when a user signs
// up with the professional role.
type Professional struct {
	BaseModel
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ServiceType     string  `gorm:"not null" json:"service_type"`
	NIDNumber       string  `gorm:"not null" json:"nid_number"`
	IsVerified      bool    `gorm:"default:false" json:"is_verified"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`
	ExperienceYears int     `json:"experience_years"`
	HourlyRate      float64 `json:"hourly_rate"`
}

// Wallet holds a professional's balance. Created with a zero balance at
// signup, in the same transaction as the user row.
type Wallet struct {
	BaseModel
	ProfessionalID string  `gorm:"type:uuid;not null;uniqueIndex" json:"professional_id"`
	Balance        float64 `gorm:"default:0" json:"balance"`
}
