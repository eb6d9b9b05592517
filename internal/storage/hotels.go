package storage

import (
	"errors"
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) GetAllHotels() ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.db.Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (s *Storage) GetHotel(codeHotel string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, `"codeHotel" = ?`, codeHotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

// CreateHotel inserts the hotel as supplied. A subcroId that references no
// subcro fails at the foreign key and the database error is returned as-is.
func (s *Storage) CreateHotel(hotel *models.Hotel) error {
	if err := s.db.Create(hotel).Error; err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

// UpdateHotel applies the full payload, so a PUT may also rename the code.
func (s *Storage) UpdateHotel(codeHotel string, upd *models.Hotel) (*models.Hotel, error) {
	result := s.db.Model(&models.Hotel{}).Where(`"codeHotel" = ?`, codeHotel).
		Updates(map[string]any{
			"codeHotel": upd.CodeHotel,
			"subcroId":  upd.SubcroID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetHotel(upd.CodeHotel)
}

func (s *Storage) DeleteHotel(codeHotel string) (bool, error) {
	result := s.db.Delete(&models.Hotel{}, `"codeHotel" = ?`, codeHotel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
