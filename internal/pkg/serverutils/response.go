package serverutils

// Response is the uniform envelope for every REST reply.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse carries the error type so clients can branch on it.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type,omitempty"`
}

func NewErrorResponse(message, errorType string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorType: errorType,
	}
}
