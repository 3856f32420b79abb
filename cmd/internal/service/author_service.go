package service

import (
	"errors"
	"io"
	"mime/multipart"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/domain/sqlite/repository"
	"bookshelf/cmd/internal/infrastructure/aws/storage"
	"bookshelf/cmd/internal/utils"
	"bookshelf/cmd/internal/utils/apierror"
	"bookshelf/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type AuthorRepository interface {
	FindAll() ([]*entity.Author, error)
	FindByID(id int64) (*entity.Author, error)
	Create(author *entity.Author) error
	SaveWithVersion(author *entity.Author) error
	Delete(author *entity.Author) error
}

type DefaultAuthorService struct {
	AuthorRepo AuthorRepository
	S3         storage.S3Client
	Validate   *validator.Validate
}

func NewAuthorService(authorRepo AuthorRepository, s3 storage.S3Client, validate *validator.Validate) *DefaultAuthorService {
	return &DefaultAuthorService{
		AuthorRepo: authorRepo,
		S3:         s3,
		Validate:   validate,
	}
}

func (a *DefaultAuthorService) GetAllAuthors() ([]*contract.AuthorResponse, apierror.ErrorResponse) {
	authors, err := a.AuthorRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch authors: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.AuthorResponse, len(authors))
	for i, author := range authors {
		resp[i] = toAuthorResponse(author)
	}
	return resp, nil
}

func (a *DefaultAuthorService) GetAuthorByID(authorId int64) (*contract.AuthorResponse, apierror.ErrorResponse) {
	author, err := a.AuthorRepo.FindByID(authorId)
	if err != nil {
		log.Errorf("failed to fetch author: %v", err)
		return nil, apierror.InternalServerError
	}

	if author == nil {
		return nil, apierror.NotFoundError
	}
	return toAuthorResponse(author), nil
}

func (a *DefaultAuthorService) CreateAuthor(req *contract.AuthorRequest) (*contract.AuthorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	now := utils.NowUTC()
	author := &entity.Author{
		ID:        uid.Generate(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := a.AuthorRepo.Create(author); err != nil {
		log.Errorf("failed to create author: %v", err)
		return nil, apierror.InternalServerError
	}
	return toAuthorResponse(author), nil
}

func (a *DefaultAuthorService) UpdateAuthor(authorId int64, req *contract.UpdateAuthorRequest) (*contract.AuthorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	author, err := a.AuthorRepo.FindByID(authorId)
	if err != nil {
		log.Errorf("failed to fetch author %d: %v", authorId, err)
		return nil, apierror.InternalServerError
	}

	if author == nil {
		return nil, apierror.NotFoundError
	}

	// Blank strings survive sanitizing, treat them as omitted.
	dirty := false
	if req.FirstName != nil && *req.FirstName != "" && *req.FirstName != author.FirstName {
		author.FirstName = *req.FirstName
		dirty = true
	}
	if req.LastName != nil && *req.LastName != "" && *req.LastName != author.LastName {
		author.LastName = *req.LastName
		dirty = true
	}

	if dirty {
		author.UpdatedAt = utils.NowUTC()
		if err := a.AuthorRepo.SaveWithVersion(author); err != nil {
			if errors.Is(err, repository.ErrStaleRecord) {
				return nil, apierror.StaleRecordError
			}
			log.Errorf("failed to update author %d: %v", authorId, err)
			return nil, apierror.InternalServerError
		}
	}
	return toAuthorResponse(author), nil
}

func (a *DefaultAuthorService) DeleteAuthor(authorId int64) apierror.ErrorResponse {
	author, err := a.AuthorRepo.FindByID(authorId)
	if err != nil {
		log.Errorf("failed to fetch author %d: %v", authorId, err)
		return apierror.InternalServerError
	}

	if author == nil {
		return apierror.NotFoundError
	}

	if len(author.Books) > 0 {
		return apierror.AuthorHasBooksError
	}

	if err := a.AuthorRepo.Delete(author); err != nil {
		log.Errorf("failed to delete author %d: %v", authorId, err)
		return apierror.InternalServerError
	}
	return nil
}

// UploadAvatar stores the image on S3 under a random name and records the
// object key on the author row.
func (a *DefaultAuthorService) UploadAvatar(authorId int64, fileHeader *multipart.FileHeader) (*contract.AuthorResponse, apierror.ErrorResponse) {
	author, err := a.AuthorRepo.FindByID(authorId)
	if err != nil {
		log.Errorf("failed to fetch author %d: %v", authorId, err)
		return nil, apierror.InternalServerError
	}

	if author == nil {
		return nil, apierror.NotFoundError
	}

	if fileHeader.Size > contract.MaxAvatarSizeBytes {
		return nil, apierror.NewSimple(400, "Avatar exceeds the maximum size of %d bytes", contract.MaxAvatarSizeBytes)
	}

	ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidAvatarFileTypes)
	if !ok {
		return nil, apierror.InvalidImageTypeError
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open avatar upload: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read avatar upload: %v", err)
		return nil, apierror.InternalServerError
	}

	key, err := a.S3.UploadFile(data, uuid.NewString()+ext)
	if err != nil {
		log.Errorf("failed to upload avatar for author %d: %v", authorId, err)
		return nil, apierror.InternalServerError
	}

	author.Avatar = key
	author.UpdatedAt = utils.NowUTC()
	if err := a.AuthorRepo.SaveWithVersion(author); err != nil {
		if errors.Is(err, repository.ErrStaleRecord) {
			return nil, apierror.StaleRecordError
		}
		log.Errorf("failed to save avatar key for author %d: %v", authorId, err)
		return nil, apierror.InternalServerError
	}
	return toAuthorResponse(author), nil
}

func toAuthorResponse(author *entity.Author) *contract.AuthorResponse {
	books := make([]*contract.BookResponse, len(author.Books))
	for i, book := range author.Books {
		books[i] = toBookResponse(book)
	}

	return &contract.AuthorResponse{
		ID:        author.ID,
		FirstName: author.FirstName,
		LastName:  author.LastName,
		Avatar:    author.Avatar,
		Books:     books,
		CreatedAt: utils.FormatEpoch(author.CreatedAt),
		UpdatedAt: utils.FormatEpoch(author.UpdatedAt),
	}
}
