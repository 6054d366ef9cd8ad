package dto

// StatusRequest payload.
type StatusRequest struct {
	Name string `json:"name"`
}

// CategoryRequest payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PriorityRequest payload.
type PriorityRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// StatusResponse shape.
type StatusResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse shape.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PriorityResponse shape.
type PriorityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}
