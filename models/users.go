package models

// User is the only entity of the application. Email is unique across rows.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role  string `gorm:"type:varchar(255);not null"`
}

func (User) TableName() string {
	return "users"
}
