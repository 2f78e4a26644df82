package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

const (
	MinPasswordLength    = 5
	MaxPasswordBytes     = 72 // bcrypt input limit
	MaxUserNameLength    = 50
	MaxEmailLength       = 120
	MaxTitleLength       = 50
	MaxDescriptionLength = 200
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{common.ErrorValidation}, args...)...)
}

func validateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		return invalid("name must be at most %d characters", MaxUserNameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return invalid("email must be at most %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return invalid("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

func validateTask(title string, description *string, status models.TaskStatus) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return invalid("title must be at most %d characters", MaxTitleLength)
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return invalid("description must be at most %d characters", MaxDescriptionLength)
	}
	return validateStatus(status)
}

func validateStatus(status models.TaskStatus) error {
	if !status.Valid() {
		return invalid("status must be one of %q, %q, %q",
			models.TaskStatusNew, models.TaskStatusInProgress, models.TaskStatusDone)
	}
	return nil
}
