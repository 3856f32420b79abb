package contract

type BookRequest struct {
	Title    string `json:"title" validate:"required,notblank,max=50"`
	Year     int    `json:"year" validate:"required,min=1,max=9999"`
	AuthorID int64  `json:"author_id" validate:"required"`
}

type UpdateBookRequest struct {
	Title *string `json:"title" validate:"omitempty,max=50"`
	Year  *int    `json:"year" validate:"omitempty,min=1,max=9999"`
}

type BookResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	AuthorID  int64  `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
