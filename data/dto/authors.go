package dto

// CreateAuthorRequestBody defines a request body for CreateAuthor.
type CreateAuthorRequestBody struct {
	AuthorName string `json:"author_name"`
}

// UpdateAuthorRequestBody defines a request body for UpdateAuthor.
type UpdateAuthorRequestBody struct {
	AuthorName string `json:"author_name"`
}
