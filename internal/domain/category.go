package domain

// Category is a service-hours category record from the backend.
type Category struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// CategoryInput is the payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// School is a school record from the backend, read-only in the portal.
type School struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}
