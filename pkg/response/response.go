package response

// Response is the error envelope written by middleware.
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Error(code, message string, details interface{}) Response {
	return Response{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	}
}
