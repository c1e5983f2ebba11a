package models

// Roles are an open set; an empty role marks an ordinary user.
const (
	RoleNone  = ""
	RoleAdmin = "Admin"
)

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"unique;not null"          json:"username"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Role         string  `gorm:"not null;default:''"      json:"role"`
	RefreshToken *string `json:"-"`
}

type Meetup struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null"          json:"name"`
	Tags        string `gorm:"not null"                 json:"tags"`
	Date        string `gorm:"not null"                 json:"date"`
	Location    string `gorm:"not null"                 json:"location"`
	Description string `json:"description"`
}
