package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type Publisher struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string      `gorm:"not null;index;column:name" json:"name"`
  Website     string      `gorm:"column:website" json:"website"`
  Phone       string      `gorm:"column:phone" json:"phone"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Publisher) TableName() string {
  return "publisher"
}

func (p *Publisher) BeforeCreate(tx *gorm.DB) error {
  if p.ID == uuid.Nil {
    p.ID = uuid.New()
  }
  return nil
}
