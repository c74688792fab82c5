package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type Rating struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_rating_user_book,unique" json:"user_id"`
  User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  BookID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_rating_user_book,unique" json:"book_id"`
  Book        *Book       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"book,omitempty"`
  Score       int         `gorm:"not null;column:score" json:"score"`
  Comment     string      `gorm:"type:text;column:comment" json:"comment"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Rating) TableName() string {
  return "rating"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
  if r.ID == uuid.Nil {
    r.ID = uuid.New()
  }
  return nil
}
