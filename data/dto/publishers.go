package dto

// CreatePublisherRequestBody defines a request body for CreatePublisher.
type CreatePublisherRequestBody struct {
	PublisherName string `json:"publisher_name"`
}

// UpdatePublisherRequestBody defines a request body for UpdatePublisher.
type UpdatePublisherRequestBody struct {
	PublisherName string `json:"publisher_name"`
}
