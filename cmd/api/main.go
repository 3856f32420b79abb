package main

import (
	"context"
	"os"

	"bookshelf/cmd/internal/auth"
	appconfig "bookshelf/cmd/internal/config"
	"bookshelf/cmd/internal/domain/sqlite"
	"bookshelf/cmd/internal/domain/sqlite/repository"
	handler2 "bookshelf/cmd/internal/http/handler"
	authguard "bookshelf/cmd/internal/http/middleware"
	"bookshelf/cmd/internal/infrastructure/aws/storage"
	"bookshelf/cmd/internal/infrastructure/mail"
	"bookshelf/cmd/internal/service"
	"bookshelf/cmd/internal/utils/uid"
	"bookshelf/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/bookshelf/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	cfg := appconfig.Load()
	uid.Init(cfg.MachineID)

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient(cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		panic(err)
	}

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Token and credential services share the process-wide secret
	hasher := auth.NewHasher()
	verifyTokens := auth.NewVerifyTokens(cfg.SecretKey, cfg.VerifyTTL)
	accessTokens := auth.NewAccessTokens(cfg.SecretKey, cfg.AccessTTL)

	// Gettings repos
	userRepo := repository.NewUserRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, hasher, verifyTokens, accessTokens, mailer, cfg.PublicBaseURL)
	authorService := service.NewAuthorService(authorRepo, s3Client, validate)
	bookService := service.NewBookService(bookRepo, authorRepo, validate)

	// Gettings handler
	userRoutes := handler2.NewUserDefault(userService)
	authorRoutes := handler2.NewAuthorDefault(authorService)
	bookRoutes := handler2.NewBookDefault(bookService)

	guard := authguard.NewAuthMiddleware(&authguard.AuthMiddlewareConfig{
		Tokens:   accessTokens,
		UserRepo: userRepo,
	})

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("6M"))

	// Users
	e.POST("/api/users", userRoutes.CreateUser)
	e.GET("/api/users/confirm/:token", userRoutes.ConfirmEmail)
	e.POST("/api/users/login", userRoutes.CreateLogin)
	e.GET("/api/users/me", userRoutes.GetMe, guard)

	// Authors
	e.GET("/api/authors", authorRoutes.GetAuthors)
	e.GET("/api/authors/:id", authorRoutes.GetAuthor)
	e.POST("/api/authors", authorRoutes.CreateAuthor, guard)
	e.PUT("/api/authors/:id", authorRoutes.UpdateAuthor, guard)
	e.DELETE("/api/authors/:id", authorRoutes.DeleteAuthor, guard)
	e.POST("/api/authors/avatar/:id", authorRoutes.UploadAvatar, guard)

	// Books
	e.GET("/api/books", bookRoutes.GetBooks)
	e.GET("/api/books/:id", bookRoutes.GetBook)
	e.POST("/api/books", bookRoutes.CreateBook, guard)
	e.PUT("/api/books/:id", bookRoutes.UpdateBook, guard)
	e.DELETE("/api/books/:id", bookRoutes.DeleteBook, guard)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(cfg.Addr); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
