package models

// User is a console login account. Maincro is a free-form affiliate-group
// tag; it is not a foreign key into subcro even though the two tables share
// the value by convention.
type User struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `gorm:"size:255;not null" json:"email"`
	Maincro  string `gorm:"size:10;not null" json:"maincro"`
}

func (User) TableName() string { return "users" }
