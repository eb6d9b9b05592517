package storage

import "strings"

// HotelMaincroSubcroRow is one row of the hotel_maincro_subcro view.
type HotelMaincroSubcroRow struct {
	CodeHotel string `gorm:"column:codeHotel" json:"codeHotel"`
	SubcroID  int    `gorm:"column:subcroId" json:"subcroId"`
	Subcro    string `gorm:"column:subcro" json:"subcro"`
	Maincro   string `gorm:"column:maincro" json:"maincro"`
}

// UserMaincroSubcroRow is one row of the user_maincro_subcro view. A user
// appears once per subcro whose maincro occurs in the user's maincro field.
type UserMaincroSubcroRow struct {
	ID      int    `gorm:"column:id" json:"id"`
	Email   string `gorm:"column:email" json:"email"`
	Maincro string `gorm:"column:maincro" json:"maincro"`
	Subcro  string `gorm:"column:subcro" json:"subcro"`
}

// HotelMaincroSubcroView returns the hotel view, optionally filtered.
// The maincro filter is an exact match here: each hotel row carries exactly
// one maincro.
func (s *Storage) HotelMaincroSubcroView(maincro, subcroName string) ([]HotelMaincroSubcroRow, error) {
	query := "SELECT * FROM hotel_maincro_subcro"
	var conds []string
	var args []any

	if maincro != "" {
		conds = append(conds, "maincro = ?")
		args = append(args, maincro)
	}
	if subcroName != "" {
		conds = append(conds, "subcro = ?")
		args = append(args, subcroName)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var rows []HotelMaincroSubcroRow
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UserMaincroSubcroView returns the user view, optionally filtered. The
// maincro filter is a substring match, NOT an exact one: the view's maincro
// column can hold a comma-separated list ("ACCOR,BXO"), and LIKE lets a
// single-group filter hit those rows. Do not "fix" this to equality.
func (s *Storage) UserMaincroSubcroView(maincro, subcroName string) ([]UserMaincroSubcroRow, error) {
	query := "SELECT * FROM user_maincro_subcro"
	var conds []string
	var args []any

	if maincro != "" {
		conds = append(conds, "maincro LIKE ?")
		args = append(args, "%"+maincro+"%")
	}
	if subcroName != "" {
		conds = append(conds, "subcro = ?")
		args = append(args, subcroName)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var rows []UserMaincroSubcroRow
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
