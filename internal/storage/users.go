package storage

import (
	"errors"
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) GetUser(id int) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Storage) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the mutable user fields. The password hash is not
// updatable through this path.
type UserUpdate struct {
	Username string
	Email    string
	Maincro  string
}

func (s *Storage) UpdateUser(id int, upd UserUpdate) (*models.User, error) {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"username": upd.Username,
		"email":    upd.Email,
		"maincro":  upd.Maincro,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(id)
}

func (s *Storage) DeleteUser(id int) (bool, error) {
	result := s.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
