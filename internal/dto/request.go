package dto

type SignUpRequest struct {
	Username        string `json:"username" validate:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type NewCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// EventRequest creates or updates an event. Exactly one of category_id and
// new_category must be present.
type EventRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Date        string              `json:"date" validate:"required"`
	Time        string              `json:"time" validate:"required"`
	Location    string              `json:"location" validate:"required"`
	ImagePath   string              `json:"image_path"`
	CategoryID  *uint               `json:"category_id,omitempty"`
	NewCategory *NewCategoryRequest `json:"new_category,omitempty"`
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
