package service

import (
	"errors"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/domain/sqlite/repository"
	"bookshelf/cmd/internal/utils"
	"bookshelf/cmd/internal/utils/apierror"
	"bookshelf/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type BookRepository interface {
	FindAll() ([]*entity.Book, error)
	FindByID(id int64) (*entity.Book, error)
	Create(book *entity.Book) error
	SaveWithVersion(book *entity.Book) error
	Delete(book *entity.Book) error
}

type DefaultBookService struct {
	BookRepo   BookRepository
	AuthorRepo AuthorRepository
	Validate   *validator.Validate
}

func NewBookService(bookRepo BookRepository, authorRepo AuthorRepository, validate *validator.Validate) *DefaultBookService {
	return &DefaultBookService{
		BookRepo:   bookRepo,
		AuthorRepo: authorRepo,
		Validate:   validate,
	}
}

func (b *DefaultBookService) GetAllBooks() ([]*contract.BookResponse, apierror.ErrorResponse) {
	books, err := b.BookRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch books: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BookResponse, len(books))
	for i, book := range books {
		resp[i] = toBookResponse(book)
	}
	return resp, nil
}

func (b *DefaultBookService) GetBookByID(bookId int64) (*contract.BookResponse, apierror.ErrorResponse) {
	book, err := b.BookRepo.FindByID(bookId)
	if err != nil {
		log.Errorf("failed to fetch book: %v", err)
		return nil, apierror.InternalServerError
	}

	if book == nil {
		return nil, apierror.NotFoundError
	}
	return toBookResponse(book), nil
}

func (b *DefaultBookService) CreateBook(req *contract.BookRequest) (*contract.BookResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	author, err := b.AuthorRepo.FindByID(req.AuthorID)
	if err != nil {
		log.Errorf("failed to fetch author %d: %v", req.AuthorID, err)
		return nil, apierror.InternalServerError
	}

	if author == nil {
		return nil, apierror.NewSimple(404, "Author with id %d not found", req.AuthorID)
	}

	now := utils.NowUTC()
	book := &entity.Book{
		ID:        uid.Generate(),
		Title:     req.Title,
		Year:      req.Year,
		AuthorID:  req.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := b.BookRepo.Create(book); err != nil {
		log.Errorf("failed to create book: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBookResponse(book), nil
}

func (b *DefaultBookService) UpdateBook(bookId int64, req *contract.UpdateBookRequest) (*contract.BookResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	book, err := b.BookRepo.FindByID(bookId)
	if err != nil {
		log.Errorf("failed to fetch book %d: %v", bookId, err)
		return nil, apierror.InternalServerError
	}

	if book == nil {
		return nil, apierror.NotFoundError
	}

	// Blank titles survive sanitizing, treat them as omitted.
	dirty := false
	if req.Title != nil && *req.Title != "" && *req.Title != book.Title {
		book.Title = *req.Title
		dirty = true
	}
	if req.Year != nil && *req.Year != book.Year {
		book.Year = *req.Year
		dirty = true
	}

	if dirty {
		book.UpdatedAt = utils.NowUTC()
		if err := b.BookRepo.SaveWithVersion(book); err != nil {
			if errors.Is(err, repository.ErrStaleRecord) {
				return nil, apierror.StaleRecordError
			}
			log.Errorf("failed to update book %d: %v", bookId, err)
			return nil, apierror.InternalServerError
		}
	}
	return toBookResponse(book), nil
}

func (b *DefaultBookService) DeleteBook(bookId int64) apierror.ErrorResponse {
	book, err := b.BookRepo.FindByID(bookId)
	if err != nil {
		log.Errorf("failed to fetch book %d: %v", bookId, err)
		return apierror.InternalServerError
	}

	if book == nil {
		return apierror.NotFoundError
	}

	if err := b.BookRepo.Delete(book); err != nil {
		log.Errorf("failed to delete book %d: %v", bookId, err)
		return apierror.InternalServerError
	}
	return nil
}

func toBookResponse(book *entity.Book) *contract.BookResponse {
	return &contract.BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Year:      book.Year,
		AuthorID:  book.AuthorID,
		CreatedAt: utils.FormatEpoch(book.CreatedAt),
		UpdatedAt: utils.FormatEpoch(book.UpdatedAt),
	}
}
