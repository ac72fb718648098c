package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

const CodeValidationFailed = "VALIDATION_FAILED"

var (
	errEmptyBody    = errors.New("request body is required")
	errTrailingData = errors.New("request body must contain a single JSON object")
)

var validate = newValidator()

// newValidator reads the same `binding` tags gin uses and reports fields by
// their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return toJSONFieldName(f.Name)
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// strictJSON decodes a single JSON object, rejecting unknown fields, and then
// validates it.
type strictJSON struct{}

func (strictJSON) Name() string { return "json" }

func (strictJSON) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errEmptyBody
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	return validate.Struct(obj)
}

// BindAndValidateJSON decodes the request body into dst. On failure it writes
// a 400 with the field errors and returns false.
func BindAndValidateJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindWith(dst, strictJSON{}); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, FromBindError(err))
		return false
	}

	return true
}

// FromBindError converts a decode or validation error into the error body
// returned to clients. The result always carries at least one field error.
func FromBindError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return formatValidationErrors(verrs)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		msg := "request body must be a JSON object"
		if field != "" {
			msg = field + " must be " + describeType(typeErr.Type)
		}
		return invalidBody(FieldError{Field: field, Rule: "type", Message: msg})
	}

	if name, ok := unknownField(err); ok {
		return invalidBody(FieldError{
			Field:   name,
			Rule:    "unknown",
			Message: name + " is not an allowed field",
		})
	}

	if errors.Is(err, errEmptyBody) {
		return invalidBody(FieldError{Rule: "required", Message: err.Error()})
	}

	return invalidBody(FieldError{Rule: "syntax", Message: err.Error()})
}

func invalidBody(fe FieldError) ErrorResponse {
	return ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "invalid request body",
		Errors:  []FieldError{fe},
	}
}

func formatValidationErrors(verrs validator.ValidationErrors) ErrorResponse {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: buildMessage(fe.Field(), fe),
		})
	}

	return ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors:  fields,
	}
}

// unknownField extracts the name from encoding/json's
// `json: unknown field "x"` error, which has no exported type.
func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`), true
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "date":
		return field + " must be a valid date"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fe.Param()
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
