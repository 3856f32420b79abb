package handler

import (
	"net/http"
	"strconv"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type BookService interface {
	GetAllBooks() ([]*contract.BookResponse, apierror.ErrorResponse)
	GetBookByID(bookId int64) (*contract.BookResponse, apierror.ErrorResponse)
	CreateBook(req *contract.BookRequest) (*contract.BookResponse, apierror.ErrorResponse)
	UpdateBook(bookId int64, req *contract.UpdateBookRequest) (*contract.BookResponse, apierror.ErrorResponse)
	DeleteBook(bookId int64) apierror.ErrorResponse
}

type DefaultBookRoute struct {
	BookService BookService
}

func NewBookDefault(bookService BookService) *DefaultBookRoute {
	return &DefaultBookRoute{BookService: bookService}
}

func (b *DefaultBookRoute) GetBooks(c echo.Context) error {
	books, apierr := b.BookService.GetAllBooks()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"books": books}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) GetBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	book, apierr := b.BookService.GetBookByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"book": book}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) CreateBook(c echo.Context) error {
	var req contract.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	book, apierr := b.BookService.CreateBook(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"book": book}
	return c.JSON(http.StatusCreated, &resp)
}

func (b *DefaultBookRoute) UpdateBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.UpdateBookRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	book, apierr := b.BookService.UpdateBook(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"book": book}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := b.BookService.DeleteBook(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
