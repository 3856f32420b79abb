package contract

var ValidAvatarFileTypes = []string{"png", "jpg", "jpeg", "webp", "gif"}

const MaxAvatarSizeBytes = 5 * 1024 * 1024

type AuthorRequest struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=20"`
	LastName  string `json:"last_name" validate:"required,notblank,max=20"`
}

// UpdateAuthorRequest fields are pointers so an absent key and an explicit
// value can be told apart. Blank values pass validation and are ignored by
// the service, same as absent ones.
type UpdateAuthorRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=20"`
	LastName  *string `json:"last_name" validate:"omitempty,max=20"`
}

type AuthorResponse struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Avatar    string          `json:"avatar,omitempty"`
	Books     []*BookResponse `json:"books"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
