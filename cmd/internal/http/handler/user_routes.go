package handler

import (
	"net/http"
	"strings"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/utils"
	"bookshelf/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(req *contract.RegisterUserRequest) (*contract.UserResponse, apierror.ErrorResponse)
	ConfirmEmail(token string) apierror.ErrorResponse
	Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse)
	Profile(user *entity.User) *contract.UserResponse
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) CreateUser(c echo.Context) error {
	var req contract.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := u.UserService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"user": user}
	return c.JSON(http.StatusCreated, &resp)
}

func (u *DefaultUserRoute) ConfirmEmail(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("token"))
	}

	if apierr := u.UserService.ConfirmEmail(token); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Email verified, you can now log in"}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) GetMe(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"user": u.UserService.Profile(user)}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) CreateLogin(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := u.UserService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
