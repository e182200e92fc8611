package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/rs/zerolog/log"
)

const (
	defaultLimit  = 0
	defaultOffset = 0
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(message string) errorResponse {
	return errorResponse{Success: false, Message: message}
}

type paginationInput struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

func newPaginationInput() paginationInput {
	return paginationInput{Limit: defaultLimit, Offset: defaultOffset}
}

var statusByKind = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindNotFound:     http.StatusNotFound,
	service.KindForbidden:    http.StatusForbidden,
	service.KindInvalidState: http.StatusBadRequest,
	service.KindConflict:     http.StatusBadRequest,
	service.KindRateLimited:  http.StatusTooManyRequests,
}

// writeError answers with the status of the error kind. Internal failures
// are logged with their cause and the caller only sees fallback.
func writeError(c echo.Context, err error, fallback string) error {
	kind := service.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")

		return c.JSON(http.StatusInternalServerError, fail(fallback))
	}

	var e *service.Error
	message := err.Error()
	if errors.As(err, &e) {
		message = e.Message
	}

	return c.JSON(status, fail(message))
}

func getAllErrorMessages(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Input data is not formed correctly"
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fmt.Sprintf("'%s': %s", fe.Field(), getMessage(fe)))
	}

	return strings.Join(messages, "; ")
}

func getMessage(fe validator.FieldError) string {
	t := fe.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return getMessageForString(fe)
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return getMessageForNumber(fe)
	}

	return "incorrect value passed"
}

func getMessageForNumber(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "uuid":
		return "should be a valid id"
	}

	return "incorrect value passed"
}
