package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type UserToken struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
  User          *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  AccessToken   string      `gorm:"not null;column:access_token" json:"-"`
  RefreshToken  string      `gorm:"not null;uniqueIndex;column:refresh_token" json:"-"`
  ExpiresAt     time.Time   `gorm:"not null;column:expires_at" json:"expires_at"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string {
  return "user_token"
}

func (t *UserToken) BeforeCreate(tx *gorm.DB) error {
  if t.ID == uuid.Nil {
    t.ID = uuid.New()
  }
  return nil
}
