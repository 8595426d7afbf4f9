package v1

import (
	"errors"
	"fmt"
	"net/http"
	"paygate/api/internal/domain"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func newValidator() *validator.Validate {
	v := validator.New()

	// decimals are validated as strings
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("nonnegative", validateNonNegative)
	return v
}

func validateNonNegative(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

// binds json body into data and validates it, writes the error response and returns false on failure
func (h *Handler) bindJSON(c *gin.Context, data any) bool {
	if err := c.ShouldBindJSON(data); err != nil {
		h.log.Debug("bind json error: " + err.Error())
		responseErr(c, http.StatusBadRequest, domain.KIND_INVALID_PARAMS, domain.ErrMsgBadRequest, "")
		return false
	}
	return h.validStruct(c, data)
}

func (h *Handler) bindQuery(c *gin.Context, data any) bool {
	if err := c.ShouldBindQuery(data); err != nil {
		h.log.Debug("bind query error: " + err.Error())
		responseErr(c, http.StatusBadRequest, domain.KIND_INVALID_PARAMS, domain.ErrMsgBadRequest, "")
		return false
	}
	return h.validStruct(c, data)
}

func (h *Handler) validStruct(c *gin.Context, data any) bool {
	err := h.validate.Struct(data)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		h.log.Debug("validation error: " + err.Error())
		responseErr(c, http.StatusBadRequest, domain.KIND_INVALID_PARAMS, domain.ErrMsgBadRequest, "")
		return false
	}

	msg := fmt.Sprintf(domain.ErrMsgParamsBadRequest, formatValidationErr(data, validationErrs[0]))
	responseErr(c, http.StatusUnprocessableEntity, domain.KIND_INVALID_PARAMS, msg, "")
	return false
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getTag(data, err.StructField())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s", jsonTag, err.Param())
	case "excluded_with":
		return fmt.Sprintf("field '%s' cannot be used together with '%s'", jsonTag, getTag(data, err.Param()))
	//  custom tags
	case "nonnegative":
		return fmt.Sprintf("field '%s' must be a decimal greater than or equal to 0", jsonTag)

	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

// json tag, or form tag for query structs, of the named field
func getTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	field, ok := typ.FieldByName(fieldName)
	if !ok {
		return fieldName
	}
	for _, key := range []string{"json", "form"} {
		if tag, _, _ := strings.Cut(field.Tag.Get(key), ","); tag != "" && tag != "-" {
			return tag
		}
	}
	return fieldName
}
