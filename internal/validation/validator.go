package validation

import (
	"regexp"
	"strings"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidateInsertArticle validates an article creation payload
func ValidateInsertArticle(data *models.InsertArticle) []apperror.FieldError {
	var errors []apperror.FieldError

	if strings.TrimSpace(data.Title) == "" {
		errors = append(errors, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	if data.Content == nil || strings.TrimSpace(*data.Content) == "" {
		errors = append(errors, apperror.FieldError{Field: "content", Message: "content is required"})
	}

	return errors
}

// ValidateUpdateArticle validates an article update payload. Fields left out
// of the payload are not checked.
func ValidateUpdateArticle(data *models.UpdateArticle) []apperror.FieldError {
	var errors []apperror.FieldError

	if data.Title != nil && strings.TrimSpace(*data.Title) == "" {
		errors = append(errors, apperror.FieldError{Field: "title", Message: "title must not be empty"})
	}
	if data.Content != nil && strings.TrimSpace(*data.Content) == "" {
		errors = append(errors, apperror.FieldError{Field: "content", Message: "content must not be empty"})
	}

	return errors
}

// ValidateInsertCategory validates a category creation payload
func ValidateInsertCategory(data *models.InsertCategory) []apperror.FieldError {
	var errors []apperror.FieldError

	if strings.TrimSpace(data.Name) == "" {
		errors = append(errors, apperror.FieldError{Field: "name", Message: "name is required"})
	}

	return errors
}

// ValidateUpdateCategory validates a category update payload
func ValidateUpdateCategory(data *models.UpdateCategory) []apperror.FieldError {
	var errors []apperror.FieldError

	if data.Name != nil && strings.TrimSpace(*data.Name) == "" {
		errors = append(errors, apperror.FieldError{Field: "name", Message: "name must not be empty"})
	}

	return errors
}

// ValidateInsertComment validates a comment creation payload
func ValidateInsertComment(data *models.InsertComment) []apperror.FieldError {
	var errors []apperror.FieldError

	if strings.TrimSpace(data.Content) == "" {
		errors = append(errors, apperror.FieldError{Field: "content", Message: "content is required"})
	}
	if data.ArticleID == nil {
		errors = append(errors, apperror.FieldError{Field: "articleId", Message: "articleId is required"})
	}

	return errors
}

// ValidateRegistration validates a registration payload
func ValidateRegistration(email, password string) []apperror.FieldError {
	var errors []apperror.FieldError

	if email == "" {
		errors = append(errors, apperror.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, apperror.FieldError{Field: "email", Message: "invalid email format", Value: email})
	}
	if len(password) < MinPasswordLength {
		errors = append(errors, apperror.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errors
}

// ValidateEmail validates a bare email address payload
func ValidateEmail(email string) []apperror.FieldError {
	var errors []apperror.FieldError

	if email == "" {
		errors = append(errors, apperror.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, apperror.FieldError{Field: "email", Message: "invalid email format", Value: email})
	}

	return errors
}
