package models

// Subcro is a sub-affiliate code under a main affiliate group. The table
// pre-dates this service and its id column does not auto-increment; ids are
// assigned by the storage layer (see storage.CreateSubcro).
type Subcro struct {
	ID          int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Maincro     string  `gorm:"size:10;not null" json:"maincro"`
	Subcro      string  `gorm:"size:10;not null" json:"subcro"`
	Label       *string `gorm:"size:100" json:"label"`
	Flagcro     *int    `json:"flagcro"`
	Webcallback *int    `json:"webcallback"`
}

func (Subcro) TableName() string { return "subcro" }
