package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthorService interface {
	GetAllAuthors() ([]*contract.AuthorResponse, apierror.ErrorResponse)
	GetAuthorByID(authorId int64) (*contract.AuthorResponse, apierror.ErrorResponse)
	CreateAuthor(req *contract.AuthorRequest) (*contract.AuthorResponse, apierror.ErrorResponse)
	UpdateAuthor(authorId int64, req *contract.UpdateAuthorRequest) (*contract.AuthorResponse, apierror.ErrorResponse)
	DeleteAuthor(authorId int64) apierror.ErrorResponse
	UploadAvatar(authorId int64, fileHeader *multipart.FileHeader) (*contract.AuthorResponse, apierror.ErrorResponse)
}

type DefaultAuthorRoute struct {
	AuthorService AuthorService
}

func NewAuthorDefault(authorService AuthorService) *DefaultAuthorRoute {
	return &DefaultAuthorRoute{AuthorService: authorService}
}

func (a *DefaultAuthorRoute) GetAuthors(c echo.Context) error {
	authors, apierr := a.AuthorService.GetAllAuthors()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"authors": authors}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAuthorRoute) GetAuthor(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	author, apierr := a.AuthorService.GetAuthorByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"author": author}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAuthorRoute) CreateAuthor(c echo.Context) error {
	var req contract.AuthorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	author, apierr := a.AuthorService.CreateAuthor(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"author": author}
	return c.JSON(http.StatusCreated, &resp)
}

func (a *DefaultAuthorRoute) UpdateAuthor(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.UpdateAuthorRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	author, apierr := a.AuthorService.UpdateAuthor(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"author": author}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAuthorRoute) DeleteAuthor(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := a.AuthorService.DeleteAuthor(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *DefaultAuthorRoute) UploadAvatar(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return c.JSON(http.StatusUnsupportedMediaType, apierror.InvalidMediaTypeError)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingAvatarError)
	}

	author, apierr := a.AuthorService.UploadAvatar(id, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"author": author}
	return c.JSON(http.StatusOK, &resp)
}
