package util

import "github.com/gofiber/fiber/v2"

// AppError is a domain error carrying the HTTP status it should surface as.
// Anything else that reaches a handler is treated as a 500.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ErrValidation(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func ErrUnauthorized(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}
