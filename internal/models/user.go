package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User carries identity plus the session-control fields the auth guard
// checks on every request: at most one non-blacklisted AccessToken is valid
// at a time, and a blacklisted token string never becomes valid again.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	AccessToken       *string   `json:"-"`
	BlacklistedTokens TokenList `gorm:"type:text" json:"-"`

	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	PushToken *string `json:"-"`

	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `json:"-"`
	DeletedBy *string    `gorm:"size:36" json:"-"`
	CreatedBy *string    `gorm:"size:36" json:"-"`
	UpdatedBy *string    `gorm:"size:36" json:"-"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TokenList is a JSON-encoded string array column. Sqlite has no native
// array type, so the blacklist is stored as a text blob.
type TokenList []string

func (l TokenList) Value() (driver.Value, error) {
	if l == nil {
		l = TokenList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TokenList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = TokenList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported token list column type %T", src)
	}
}

func (l TokenList) Contains(token string) bool {
	for _, t := range l {
		if t == token {
			return true
		}
	}
	return false
}
