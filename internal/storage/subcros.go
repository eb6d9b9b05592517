package storage

import (
	"errors"
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) GetAllSubcros() ([]models.Subcro, error) {
	var subcros []models.Subcro
	if err := s.db.Find(&subcros).Error; err != nil {
		return nil, err
	}
	return subcros, nil
}

func (s *Storage) GetSubcro(id int) (*models.Subcro, error) {
	var subcro models.Subcro
	if err := s.db.First(&subcro, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &subcro, nil
}

// nextSubcroID reads the current maximum id and adds one. The subcro table
// has no sequence, so this read-then-insert pair is not atomic: two
// concurrent creates can observe the same maximum and collide on insert.
// Known limitation, kept until the table grows a real key generator.
func (s *Storage) nextSubcroID() (int, error) {
	var maxID int
	if err := s.db.Raw("SELECT COALESCE(MAX(id), 0) FROM subcro").Scan(&maxID).Error; err != nil {
		return 0, fmt.Errorf("failed to read max subcro id: %w", err)
	}
	return maxID + 1, nil
}

func (s *Storage) CreateSubcro(subcro *models.Subcro) error {
	id, err := s.nextSubcroID()
	if err != nil {
		return err
	}
	subcro.ID = id

	if err := s.db.Create(subcro).Error; err != nil {
		return fmt.Errorf("failed to create subcro: %w", err)
	}
	return nil
}

// SubcroUpdate carries the mutable subcro fields. Nil optional fields are
// left out of the UPDATE entirely, so the stored values survive a payload
// that omits them.
type SubcroUpdate struct {
	Maincro     string
	Subcro      string
	Label       *string
	Flagcro     *int
	Webcallback *int
}

func (s *Storage) UpdateSubcro(id int, upd SubcroUpdate) (*models.Subcro, error) {
	fields := map[string]any{
		"maincro": upd.Maincro,
		"subcro":  upd.Subcro,
	}
	if upd.Label != nil {
		fields["label"] = *upd.Label
	}
	if upd.Flagcro != nil {
		fields["flagcro"] = *upd.Flagcro
	}
	if upd.Webcallback != nil {
		fields["webcallback"] = *upd.Webcallback
	}

	result := s.db.Model(&models.Subcro{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetSubcro(id)
}

func (s *Storage) DeleteSubcro(id int) (bool, error) {
	result := s.db.Delete(&models.Subcro{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SubcroOption is an {id, subcro} pair for populating selection lists.
type SubcroOption struct {
	ID     int    `json:"id"`
	Subcro string `json:"subcro"`
}

func (s *Storage) DistinctMaincros() ([]string, error) {
	var maincros []string
	err := s.db.Raw("SELECT DISTINCT maincro FROM subcro ORDER BY maincro").Scan(&maincros).Error
	if err != nil {
		return nil, err
	}
	return maincros, nil
}

func (s *Storage) SubcrosByMaincro(maincro string) ([]SubcroOption, error) {
	var options []SubcroOption
	err := s.db.Raw("SELECT id, subcro FROM subcro WHERE maincro = ? ORDER BY subcro", maincro).
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
