package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/comment-dashboard-api/internal/models"
	"github.com/go-playground/validator/v10"
)

// FieldError represents a single validation error
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks moderation requests
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the moderation rules registered
func NewValidator() *Validator {
	v := validator.New()

	// Report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("comment_status", func(fl validator.FieldLevel) bool {
		return models.CommentStatus(fl.Field().String()).Valid()
	})
	v.RegisterValidation("bulk_action", func(fl validator.FieldLevel) bool {
		action := models.BulkAction(fl.Field().String())
		if action == models.BulkActionDelete {
			return true
		}
		_, ok := action.Status()
		return ok
	})

	return &Validator{validate: v}
}

// ValidateStatus validates a single status transition target
func (v *Validator) ValidateStatus(status models.CommentStatus) []FieldError {
	return v.check(&models.StatusUpdateRequest{Status: status})
}

// ValidateStatusUpdate validates a PATCH body
func (v *Validator) ValidateStatusUpdate(req *models.StatusUpdateRequest) []FieldError {
	return v.check(req)
}

// ValidateBulk validates a bulk moderation request
func (v *Validator) ValidateBulk(req *models.BulkRequest) []FieldError {
	return v.check(req)
}

// ParseCommentID parses a path id into a positive integer
func ParseCommentID(raw string) (int64, []FieldError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, []FieldError{{Field: "id", Message: "id must be a positive integer", Value: raw}}
	}
	return id, nil
}

func (v *Validator) check(s interface{}) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
			Value:   valueOf(fe),
		})
	}
	return out
}

// fieldPath drops the struct name prefix, keeping slice indexes
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s array is required", fe.Field())
		}
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
	case "gt":
		return "comment id must be a positive integer"
	case "comment_status":
		return "invalid status, must be one of: pending, approved, spam"
	case "bulk_action":
		return "invalid action, must be one of: pending, approved, spam, delete"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func valueOf(fe validator.FieldError) interface{} {
	switch fe.Tag() {
	case "required", "min":
		return nil
	}
	return fe.Value()
}
