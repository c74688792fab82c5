package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type Author struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string      `gorm:"not null;index;column:name" json:"name"`
  Email       string      `gorm:"column:email" json:"email"`
  Bio         string      `gorm:"type:text;column:bio" json:"bio"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Author) TableName() string {
  return "author"
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
  if a.ID == uuid.Nil {
    a.ID = uuid.New()
  }
  return nil
}
