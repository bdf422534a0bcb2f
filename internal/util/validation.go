package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body and writes a 400 or 422 envelope on failure.
// It returns false when the handler should stop.
func BindJSON(c *gin.Context, req interface{}) bool {
	return bind(c, c.ShouldBindJSON(req))
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, req interface{}) bool {
	return bind(c, c.ShouldBindQuery(req))
}

// BindForm is BindJSON for multipart or urlencoded forms.
func BindForm(c *gin.Context, req interface{}) bool {
	return bind(c, c.ShouldBind(req))
}

func bind(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ValidationError(c, FieldErrors(verrs))
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		BadRequest(c, "Malformed JSON body")
	case errors.As(err, &typeErr):
		ValidationError(c, map[string]string{toSnake(typeErr.Field): "has an invalid type"})
	default:
		BadRequest(c, err.Error())
	}
	return false
}

// FieldErrors turns validator errors into {field: message}.
func FieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[toSnake(fe.Field())] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	}
	return fmt.Sprintf("failed on %s", fe.Tag())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '.' && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
