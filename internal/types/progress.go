package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

const (
  ProgressStatusReading   = "READING"
  ProgressStatusCompleted = "COMPLETED"
  ProgressStatusPaused    = "PAUSED"
)

// Progress is the per-user, per-book reading state and points ledger.
// COMPLETED is terminal: page and percent freeze and page updates no-op.
type Progress struct {
  ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID              uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_book,unique" json:"user_id"`
  User                *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  BookID              uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_book,unique" json:"book_id"`
  Book                *Book       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"book,omitempty"`
  CurrentPage         int         `gorm:"not null;default:0;column:current_page" json:"current_page"`
  PercentComplete     float64     `gorm:"type:numeric(5,2);not null;default:0;column:percent_complete" json:"percent_complete"`
  Points              float64     `gorm:"type:numeric(10,2);not null;default:0;column:points" json:"points"`
  Status              string      `gorm:"not null;default:'READING';column:status" json:"status"`
  FirstProgressAt     *time.Time  `gorm:"column:first_progress_at" json:"first_progress_at,omitempty"`
  LastSessionAt       *time.Time  `gorm:"column:last_session_at" json:"last_session_at,omitempty"`
  SessionCount        int         `gorm:"not null;default:0;column:session_count" json:"session_count"`
  CurrentStreakDays   int         `gorm:"not null;default:0;column:current_streak_days" json:"current_streak_days"`
  LongestStreakDays   int         `gorm:"not null;default:0;column:longest_streak_days" json:"longest_streak_days"`
  CreatedAt           time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt           time.Time   `gorm:"not null" json:"updated_at"`
}

func (Progress) TableName() string {
  return "progress"
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
  if p.ID == uuid.Nil {
    p.ID = uuid.New()
  }
  return nil
}

func ValidProgressStatus(status string) bool {
  switch status {
  case ProgressStatusReading, ProgressStatusCompleted, ProgressStatusPaused:
    return true
  default:
    return false
  }
}
