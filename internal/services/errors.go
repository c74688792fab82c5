package services

import (
  "errors"
)

var (
  // ErrNotFound covers any referenced user, book, progress or rating that
  // does not exist or does not belong to the acting user.
  ErrNotFound = errors.New("record not found")
  // ErrAlreadyCompleted marks page updates against a completed progress.
  // The progress row is untouched; callers report it as informational.
  ErrAlreadyCompleted = errors.New("book already completed")
  // ErrOutOfRangeRating marks a score outside 1-5.
  ErrOutOfRangeRating = errors.New("rating score must be between 1 and 5")
  // ErrRatingNotAllowed marks a rating attempt before the book is completed.
  ErrRatingNotAllowed = errors.New("book must be completed before rating")
  // ErrInvalidInput marks malformed request values.
  ErrInvalidInput = errors.New("invalid input")
)
