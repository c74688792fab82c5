package types

import (
  "time"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

const (
  ReadingEventSession      = "session_registered"
  ReadingEventPageUpdate   = "page_updated"
  ReadingEventCompleted    = "book_completed"
  ReadingEventPodiumBonus  = "podium_bonus"
  ReadingEventRatingBonus  = "first_rating_bonus"
)

// ReadingEvent is the audit trail for every points-affecting action.
type ReadingEvent struct {
  ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
  User        *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  BookID      *uuid.UUID      `gorm:"type:uuid;index" json:"book_id,omitempty"`
  Book        *Book           `gorm:"constraint:OnDelete:SET NULL;foreignKey:BookID;references:ID" json:"book,omitempty"`
  Type        string          `gorm:"column:type;not null;index" json:"type"`
  Data        datatypes.JSON  `gorm:"column:data" json:"data"`
  CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

func (ReadingEvent) TableName() string {
  return "reading_event"
}

func (e *ReadingEvent) BeforeCreate(tx *gorm.DB) error {
  if e.ID == uuid.Nil {
    e.ID = uuid.New()
  }
  return nil
}
