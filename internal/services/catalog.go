package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/normalization"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

// CatalogService is the staff-facing side of the catalog: CRUD for books,
// authors and publishers, plus the public search. Staff gating happens at
// the router, not here.
type CatalogService interface {
  SearchBooks(ctx context.Context, query, order string) ([]*types.Book, error)
  GetBook(ctx context.Context, bookID uuid.UUID) (*types.Book, error)
  CreateBook(ctx context.Context, book *types.Book) (*types.Book, error)
  UpdateBook(ctx context.Context, book *types.Book) (*types.Book, error)
  DeleteBook(ctx context.Context, bookID uuid.UUID) error

  ListAuthors(ctx context.Context) ([]*types.Author, error)
  CreateAuthor(ctx context.Context, author *types.Author) (*types.Author, error)
  UpdateAuthor(ctx context.Context, author *types.Author) (*types.Author, error)
  DeleteAuthor(ctx context.Context, authorID uuid.UUID) error

  ListPublishers(ctx context.Context) ([]*types.Publisher, error)
  CreatePublisher(ctx context.Context, publisher *types.Publisher) (*types.Publisher, error)
  UpdatePublisher(ctx context.Context, publisher *types.Publisher) (*types.Publisher, error)
  DeletePublisher(ctx context.Context, publisherID uuid.UUID) error
}

type catalogService struct {
  db            *gorm.DB
  log           *logger.Logger
  bookRepo      repos.BookRepo
  authorRepo    repos.AuthorRepo
  publisherRepo repos.PublisherRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo, authorRepo repos.AuthorRepo, publisherRepo repos.PublisherRepo) CatalogService {
  serviceLog := log.With("service", "CatalogService")
  return &catalogService{
    db:            db,
    log:           serviceLog,
    bookRepo:      bookRepo,
    authorRepo:    authorRepo,
    publisherRepo: publisherRepo,
  }
}

func (cs *catalogService) SearchBooks(ctx context.Context, query, order string) ([]*types.Book, error) {
  return cs.bookRepo.Search(ctx, nil, normalization.TrimInputString(query), order)
}

func (cs *catalogService) GetBook(ctx context.Context, bookID uuid.UUID) (*types.Book, error) {
  books, err := cs.bookRepo.GetByIDs(ctx, nil, []uuid.UUID{bookID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch book: %w", err)
  }
  if len(books) == 0 {
    return nil, ErrNotFound
  }
  return books[0], nil
}

func (cs *catalogService) CreateBook(ctx context.Context, book *types.Book) (*types.Book, error) {
  if book == nil || normalization.TrimInputString(book.Title) == "" {
    return nil, ErrInvalidInput
  }
  book.Title = normalization.TrimInputString(book.Title)
  if book.PageCount < 0 {
    return nil, ErrInvalidInput
  }
  if _, err := cs.bookRepo.Create(ctx, nil, []*types.Book{book}); err != nil {
    return nil, fmt.Errorf("Failed to create book: %w", err)
  }
  return book, nil
}

func (cs *catalogService) UpdateBook(ctx context.Context, book *types.Book) (*types.Book, error) {
  if book == nil || book.ID == uuid.Nil {
    return nil, ErrInvalidInput
  }
  existing, err := cs.GetBook(ctx, book.ID)
  if err != nil {
    return nil, err
  }
  // Rating aggregates are derived; a catalog edit never touches them.
  book.MeanRating = existing.MeanRating
  book.RatingCount = existing.RatingCount
  book.Title = normalization.TrimInputString(book.Title)
  if book.Title == "" || book.PageCount < 0 {
    return nil, ErrInvalidInput
  }
  if err := cs.bookRepo.Save(ctx, nil, book); err != nil {
    return nil, fmt.Errorf("Failed to update book: %w", err)
  }
  return book, nil
}

func (cs *catalogService) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
  if _, err := cs.GetBook(ctx, bookID); err != nil {
    return err
  }
  return cs.bookRepo.DeleteByIDs(ctx, nil, []uuid.UUID{bookID})
}

func (cs *catalogService) ListAuthors(ctx context.Context) ([]*types.Author, error) {
  return cs.authorRepo.List(ctx, nil)
}

func (cs *catalogService) CreateAuthor(ctx context.Context, author *types.Author) (*types.Author, error) {
  if author == nil || normalization.TrimInputString(author.Name) == "" {
    return nil, ErrInvalidInput
  }
  author.Name = normalization.TrimInputString(author.Name)
  if _, err := cs.authorRepo.Create(ctx, nil, []*types.Author{author}); err != nil {
    return nil, fmt.Errorf("Failed to create author: %w", err)
  }
  return author, nil
}

func (cs *catalogService) UpdateAuthor(ctx context.Context, author *types.Author) (*types.Author, error) {
  if author == nil || author.ID == uuid.Nil || normalization.TrimInputString(author.Name) == "" {
    return nil, ErrInvalidInput
  }
  found, err := cs.authorRepo.GetByIDs(ctx, nil, []uuid.UUID{author.ID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch author: %w", err)
  }
  if len(found) == 0 {
    return nil, ErrNotFound
  }
  author.Name = normalization.TrimInputString(author.Name)
  if err := cs.authorRepo.Save(ctx, nil, author); err != nil {
    return nil, fmt.Errorf("Failed to update author: %w", err)
  }
  return author, nil
}

func (cs *catalogService) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
  found, err := cs.authorRepo.GetByIDs(ctx, nil, []uuid.UUID{authorID})
  if err != nil {
    return fmt.Errorf("Failed to fetch author: %w", err)
  }
  if len(found) == 0 {
    return ErrNotFound
  }
  return cs.authorRepo.DeleteByIDs(ctx, nil, []uuid.UUID{authorID})
}

func (cs *catalogService) ListPublishers(ctx context.Context) ([]*types.Publisher, error) {
  return cs.publisherRepo.List(ctx, nil)
}

func (cs *catalogService) CreatePublisher(ctx context.Context, publisher *types.Publisher) (*types.Publisher, error) {
  if publisher == nil || normalization.TrimInputString(publisher.Name) == "" {
    return nil, ErrInvalidInput
  }
  publisher.Name = normalization.TrimInputString(publisher.Name)
  if _, err := cs.publisherRepo.Create(ctx, nil, []*types.Publisher{publisher}); err != nil {
    return nil, fmt.Errorf("Failed to create publisher: %w", err)
  }
  return publisher, nil
}

func (cs *catalogService) UpdatePublisher(ctx context.Context, publisher *types.Publisher) (*types.Publisher, error) {
  if publisher == nil || publisher.ID == uuid.Nil || normalization.TrimInputString(publisher.Name) == "" {
    return nil, ErrInvalidInput
  }
  found, err := cs.publisherRepo.GetByIDs(ctx, nil, []uuid.UUID{publisher.ID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch publisher: %w", err)
  }
  if len(found) == 0 {
    return nil, ErrNotFound
  }
  publisher.Name = normalization.TrimInputString(publisher.Name)
  if err := cs.publisherRepo.Save(ctx, nil, publisher); err != nil {
    return nil, fmt.Errorf("Failed to update publisher: %w", err)
  }
  return publisher, nil
}

func (cs *catalogService) DeletePublisher(ctx context.Context, publisherID uuid.UUID) error {
  found, err := cs.publisherRepo.GetByIDs(ctx, nil, []uuid.UUID{publisherID})
  if err != nil {
    return fmt.Errorf("Failed to fetch publisher: %w", err)
  }
  if len(found) == 0 {
    return ErrNotFound
  }
  return cs.publisherRepo.DeleteByIDs(ctx, nil, []uuid.UUID{publisherID})
}
