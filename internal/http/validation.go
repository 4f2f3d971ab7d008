package http

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"jobly/internal/domain"
)

var (
	registerOnce sync.Once
	handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// registerValidators installs the custom rules on gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return len(s) <= 25 && handlePattern.MatchString(s)
		})
		_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
			return domain.ApplicationStatus(fl.Field().String()).Valid()
		})

		v.RegisterCustomTypeFunc(nullableValue,
			domain.Nullable[int]{},
			domain.Nullable[float64]{},
			domain.Nullable[string]{},
		)
	})
}

// nullableValue exposes the wrapped value to validation rules; nil for absent
// or null fields, which omitempty then skips.
func nullableValue(field reflect.Value) any {
	if n, ok := field.Interface().(interface{ SQLValue() any }); ok {
		return n.SQLValue()
	}
	return nil
}

// bindJSON decodes the body into req, reporting shape problems as BadRequest.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindQuery binds the query string into req after rejecting unknown keys.
func bindQuery(c *gin.Context, req any, allowed ...string) error {
	for key := range c.Request.URL.Query() {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return domain.BadRequest("unknown query parameter: %s", key)
		}
	}

	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindingError(err error) error {
	if errors.Is(err, io.EOF) {
		return domain.BadRequest("No data")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return domain.BadRequest("%s", strings.Join(msgs, "; "))
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return domain.BadRequest("invalid value %q", numErr.Num)
	}
	return domain.BadRequest("%s", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid url", fe.Field())
	case "handle":
		return fmt.Sprintf("%s must be 1-25 lowercase letters, digits or dashes", fe.Field())
	case "jobstatus":
		return fmt.Sprintf("Invalid status: %v", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func parseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.BadRequest("invalid %s", param)
	}
	// ids are 32-bit serials on postgres; anything larger cannot exist
	if id > math.MaxInt32 {
		return 0, domain.NotFound("No job: %d", id)
	}
	return id, nil
}
