package service

import (
	"errors"
	"strings"

	"bookshelf/cmd/internal/auth"
	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/domain/sqlite/repository"
	"bookshelf/cmd/internal/infrastructure/mail"
	"bookshelf/cmd/internal/utils"
	"bookshelf/cmd/internal/utils/apierror"
	"bookshelf/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindActiveByUsername(username string) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	FindActiveByID(id int64) (*entity.User, error)
	Create(user *entity.User) error
	SaveWithVersion(user *entity.User) error
}

// UserService drives the account lifecycle: registration, email
// confirmation and login.
type UserService struct {
	UserRepo     UserRepository
	Validate     *validator.Validate
	Hasher       *auth.Hasher
	VerifyTokens *auth.VerifyTokens
	AccessTokens *auth.AccessTokens
	Mailer       mail.Sender
	BaseURL      string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	hasher *auth.Hasher,
	verifyTokens *auth.VerifyTokens,
	accessTokens *auth.AccessTokens,
	mailer mail.Sender,
	baseURL string,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		Validate:     validate,
		Hasher:       hasher,
		VerifyTokens: verifyTokens,
		AccessTokens: accessTokens,
		Mailer:       mailer,
		BaseURL:      baseURL,
	}
}

// Register creates an unverified active account and dispatches the
// confirmation email. The mail send is fire-and-forget: a delivery
// failure is logged but never rolls the registration back.
func (u *UserService) Register(req *contract.RegisterUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	existing, err := u.UserRepo.FindActiveByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to check username %s: %v", req.Username, err)
		return nil, apierror.InternalServerError
	}
	if existing != nil {
		return nil, apierror.DuplicateUsernameError
	}

	existing, err = u.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}
	if existing != nil {
		return nil, apierror.DuplicateEmailError
	}

	hash, err := u.Hasher.Hash(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:           uid.Generate(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.UserRepo.Create(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	go u.sendVerificationMail(user.Email)
	return toUserResponse(user), nil
}

// ConfirmEmail consumes a verification token and flips the account to
// verified. The token itself stays valid until expiry; re-running it
// against an already-verified account is rejected by the flag check.
func (u *UserService) ConfirmEmail(token string) apierror.ErrorResponse {
	email, err := u.VerifyTokens.Consume(token)
	if err != nil {
		return apierror.InvalidVerifyURLError
	}

	user, err := u.UserRepo.FindActiveByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch user for confirmation: %v", err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.UserNotFoundError
	}

	if user.IsVerified {
		return apierror.AlreadyVerifiedError
	}

	user.IsVerified = true
	user.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.SaveWithVersion(user); err != nil {
		if errors.Is(err, repository.ErrStaleRecord) {
			return apierror.StaleRecordError
		}
		log.Errorf("failed to mark user %d as verified: %v", user.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

// Login authenticates by email or username, stamps last_login and hands
// out a bearer access token.
func (u *UserService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	var user *entity.User
	var err error
	if looksLikeEmail(req.Identifier) {
		user, err = u.UserRepo.FindActiveByEmail(req.Identifier)
	}
	if user == nil && err == nil {
		user, err = u.UserRepo.FindActiveByUsername(req.Identifier)
	}

	if err != nil {
		log.Errorf("failed to fetch user for login: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.UserNotFoundError
	}

	if !user.IsVerified {
		return nil, apierror.NotVerifiedError
	}

	if !u.Hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apierror.CredentialsError
	}

	now := utils.NowUTC()
	user.LastLogin = now
	user.UpdatedAt = now
	if err := u.UserRepo.SaveWithVersion(user); err != nil {
		if errors.Is(err, repository.ErrStaleRecord) {
			return nil, apierror.StaleRecordError
		}
		log.Errorf("failed to update last login for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := u.AccessTokens.Issue(user.ID)
	if err != nil {
		log.Errorf("failed to issue access token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.LoginResponse{AccessToken: token}, nil
}

// Profile projects an authenticated account onto its public shape.
func (u *UserService) Profile(user *entity.User) *contract.UserResponse {
	return toUserResponse(user)
}

func (u *UserService) sendVerificationMail(email string) {
	token, err := u.VerifyTokens.Issue(email)
	if err != nil {
		log.Errorf("failed to issue verification token for %s: %v", email, err)
		return
	}

	link := u.BaseURL + "/api/users/confirm/" + token
	if err := u.Mailer.SendVerificationEmail(email, link); err != nil {
		log.Errorf("failed to send verification email to %s: %v", email, err)
	}
}

func looksLikeEmail(s string) bool { return strings.ContainsRune(s, '@') }

func toUserResponse(user *entity.User) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  utils.FormatEpoch(user.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(user.UpdatedAt),
	}
	if user.LastLogin > 0 {
		resp.LastLogin = utils.FormatEpoch(user.LastLogin)
	}
	return resp
}
