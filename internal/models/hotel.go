package models

// Hotel is a property identified by an application-assigned short code,
// conventionally three digits. Each hotel belongs to exactly one subcro;
// the foreign key is enforced by the database, not by handlers.
type Hotel struct {
	CodeHotel string `gorm:"column:codeHotel;primaryKey;size:10" json:"codeHotel"`
	SubcroID  int    `gorm:"column:subcroId;not null" json:"subcroId"`
	Subcro    Subcro `gorm:"foreignKey:SubcroID;references:ID" json:"-"`
}

func (Hotel) TableName() string { return "hotel" }
