package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrUnknownCategory = ErrorResponse{
		Status:  "error",
		Error:   "unknown_category",
		Details: "Category is not configured",
	}

	ErrPhotoNotFound = ErrorResponse{
		Status:  "error",
		Error:   "photo_not_found",
		Details: "No such photo in this category",
	}
)
