package create_booking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long (max %d characters)", ErrInvalidInput, domain.MaxNameLength)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long (max %d characters)", ErrInvalidInput, domain.MaxPhoneLength)
	}
	if !containsDigit(phone) {
		return fmt.Errorf("%w: phone must contain digits", ErrInvalidInput)
	}

	if len(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long (max %d characters)", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
