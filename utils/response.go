package utils

// ApiResponse is the uniform envelope every endpoint returns:
// {statusCode, data, message, success}.
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func SuccessResponse(statusCode int, message string, data any) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

func ErrorResponse(statusCode int, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
	}
}
