package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError         = NewSimple(404, "Resource not found")
	InvalidMediaTypeError = NewSimple(415, "Unsupported media type")
	UnauthorizedError     = NewSimple(401, "Missing or invalid credentials")

	/*
	 * Account lifecycle
	 */
	DuplicateUsernameError = NewSimple(422, "Username already exists")
	DuplicateEmailError    = NewSimple(422, "Email already exists")
	UserNotFoundError      = NewSimple(404, "User not found")
	NotVerifiedError       = NewSimple(400, "Email is not verified yet")
	AlreadyVerifiedError   = NewSimple(400, "Email is already verified")
	CredentialsError       = NewSimple(401, "Credentials mismatch")
	InvalidVerifyURLError  = NewSimple(404, "Confirmation link is invalid or has expired")
	InvalidAuthTokenError  = NewSimple(401, "Invalid or expired authorization token")

	/*
	 * Catalog
	 */
	StaleRecordError      = NewSimple(422, "Data was updated by another user. Please refresh and try again")
	AuthorHasBooksError   = NewSimple(400, "Cannot delete author with existing books")
	MissingAvatarError    = NewSimple(400, "Missing 'avatar' file in form data")
	InvalidImageTypeError = NewSimple(400, "Avatar must be an image file")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	structured := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			structured.Add(field, "This field is required")
		case "min":
			structured.Add(field, "Value is too short, min: "+fe.Param())
		case "max":
			structured.Add(field, "Value is too long, max: "+fe.Param())
		case "email":
			structured.Add(field, "Value must be a valid email address")
		case "notblank":
			structured.Add(field, "Value cannot be blank")

		default:
			structured.Add(field, "Invalid value provided")
		}
	}
	return structured
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter '%s'", name)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}
