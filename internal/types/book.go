package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// Book's MeanRating and RatingCount are derived: they always hold the
// recomputed aggregate of the book's ratings, never incremental deltas.
type Book struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Title           string      `gorm:"not null;index;column:title" json:"title"`
  AuthorID        *uuid.UUID  `gorm:"type:uuid;index" json:"author_id,omitempty"`
  Author          *Author     `gorm:"constraint:OnDelete:SET NULL;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
  PublisherID     *uuid.UUID  `gorm:"type:uuid;index" json:"publisher_id,omitempty"`
  Publisher       *Publisher  `gorm:"constraint:OnDelete:SET NULL;foreignKey:PublisherID;references:ID" json:"publisher,omitempty"`
  PublicationYear int         `gorm:"column:publication_year" json:"publication_year"`
  PageCount       int         `gorm:"not null;default:0;column:page_count" json:"page_count"`
  MeanRating      float64     `gorm:"type:numeric(3,2);not null;default:0;column:mean_rating" json:"mean_rating"`
  RatingCount     int         `gorm:"not null;default:0;column:rating_count" json:"rating_count"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (Book) TableName() string {
  return "book"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
  if b.ID == uuid.Nil {
    b.ID = uuid.New()
  }
  return nil
}
