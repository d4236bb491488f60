package errors

var InvalidRequestError = Error{
	Message: "Invalid request",
	Error:   400,
}

var InvalidSelectionError = Error{
	Message: "Invalid selection",
	Error:   400,
}

func NewInvalidParamError(paramName string) Error {
	return Error{
		Message: "Invalid parameter: " + paramName,
		Error:   400,
	}
}

var DocumentNotFoundError = Error{
	Message: "Document not found",
	Error:   404,
}

func NewUnknownCommandError(command string) Error {
	return Error{
		Message: "Unknown command: " + command,
		Error:   404,
	}
}

var ImportTooLargeError = Error{
	Message: "Import exceeds the maximum size",
	Error:   413,
}

func NewValidationError(message string) Error {
	return Error{
		Message: "Validation failed: " + message,
		Error:   422,
	}
}

var InternalServerError = Error{
	Message: "Internal server error",
	Error:   500,
}
