package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type User struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Email       string      `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password    string      `gorm:"not null;column:password" json:"-"`
  FirstName   string      `gorm:"not null;column:first_name" json:"first_name"`
  LastName    string      `gorm:"not null;column:last_name" json:"last_name"`
  IsStaff     bool        `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
  if u.ID == uuid.Nil {
    u.ID = uuid.New()
  }
  return nil
}
