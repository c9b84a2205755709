package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is only attachable to a non-deleted task. UserID is nullable: it
// is cleared (not cascaded) when the author's account is deleted.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Content string  `gorm:"not null" json:"content"`
	TaskID  string  `gorm:"size:36;not null;index" json:"task_id"`
	UserID  *string `gorm:"size:36;index" json:"user_id"`
	User    *User   `gorm:"foreignKey:UserID" json:"-"`

	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `json:"-"`
	DeletedBy *string    `gorm:"size:36" json:"-"`
	CreatedBy *string    `gorm:"size:36" json:"-"`
	UpdatedBy *string    `gorm:"size:36" json:"-"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
