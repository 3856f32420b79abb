package repository

import (
	"errors"
	"testing"

	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/utils"
)

func seedAuthor(t *testing.T, repo *DefaultAuthorRepository, id int64, first, last string) *entity.Author {
	t.Helper()
	now := utils.NowUTC()
	author := &entity.Author{
		ID:        id,
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(author); err != nil {
		t.Fatalf("failed to seed author %s %s: %v", first, last, err)
	}
	return author
}

func TestAuthorFindByIDPreloadsBooks(t *testing.T) {
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)

	seedAuthor(t, authors, 1, "Dennis", "Ritchie")
	now := utils.NowUTC()
	if err := books.Create(&entity.Book{
		ID:        10,
		Title:     "The C Programming Language",
		Year:      1978,
		AuthorID:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	found, err := authors.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(found.Books) != 1 || found.Books[0].Title != "The C Programming Language" {
		t.Errorf("expected the author's book to be loaded, got %+v", found.Books)
	}

	missing, err := authors.FindByID(99)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for an unknown author, got %+v", missing)
	}
}

func TestAuthorSaveWithVersionConflict(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	seedAuthor(t, repo, 1, "Dennis", "Ritchie")

	first, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	second, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	first.Avatar = "avatars/ritchie.png"
	first.UpdatedAt = utils.NowUTC()
	if err := repo.SaveWithVersion(first); err != nil {
		t.Fatalf("first writer should win: %v", err)
	}

	second.FirstName = "Denis"
	second.UpdatedAt = utils.NowUTC()
	if err := repo.SaveWithVersion(second); !errors.Is(err, ErrStaleRecord) {
		t.Fatalf("second writer should lose with ErrStaleRecord, got %v", err)
	}

	stored, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.FirstName != "Dennis" || stored.Avatar != "avatars/ritchie.png" {
		t.Errorf("unexpected row after conflict: %+v", stored)
	}
}

func TestAuthorDeleteCascadesToBooks(t *testing.T) {
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)

	author := seedAuthor(t, authors, 1, "Dennis", "Ritchie")
	now := utils.NowUTC()
	if err := books.Create(&entity.Book{
		ID:        10,
		Title:     "The C Programming Language",
		Year:      1978,
		AuthorID:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	if err := authors.Delete(author); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	remaining, err := books.FindAll()
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected the author's books to be gone, got %+v", remaining)
	}
}
