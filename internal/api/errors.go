package api

import (
	"errors"
	"strings"

	"github.com/Veraticus/leasetx/internal/common"
)

// UserMessage turns an error into the message a user should see: the
// backend's own message, a validation message, or DefaultErrorMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	switch {
	case errors.Is(err, common.ErrBusy):
		return "이전 요청을 처리하는 중입니다."
	case errors.Is(err, common.ErrValidation):
		return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	default:
		return DefaultErrorMessage
	}
}
