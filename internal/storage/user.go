package storage

import (
	"time"

	"github.com/markgregr/taskflow_REST_server/internal/models"
)

func (s *Storage) CreateUser(user *models.User) error {
	return translate(s.db.Create(user).Error)
}

func (s *Storage) SaveUser(user *models.User) error {
	return translate(s.db.Save(user).Error)
}

// UserByEmail excludes soft-deleted accounts.
func (s *Storage) UserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Storage) UserByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserByIDAny includes soft-deleted accounts, for audit access.
func (s *Storage) UserByIDAny(id string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserByResetToken matches the reset-password triple: the email, the token,
// and a still-live expiry.
func (s *Storage) UserByResetToken(email, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.db.
		Where("email = ? AND reset_token = ? AND reset_token_expiry > ? AND is_deleted = ?",
			email, token, now, false).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// DetachUserComments clears the author reference on every comment the user
// wrote. Comments survive account deletion.
func (s *Storage) DetachUserComments(userID string) error {
	return translate(s.db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"user_id": nil}).Error)
}

// UnassignUserTasks releases the user's assigned tasks back to the
// unassigned pool instead of deleting them.
func (s *Storage) UnassignUserTasks(userID string) error {
	return translate(s.db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"user_id": nil, "updated_by": userID}).Error)
}
