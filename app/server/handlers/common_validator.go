package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"post-board/app/server/apperr"
	"post-board/app/server/auth"
	"post-board/app/server/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator 实现 echo.Validator ，字段名使用 json tag
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return apperr.ValidationFields(fields)
}

// fieldPath 去掉最外层结构体名，例如 DeleteManyRequest.ids[0] -> ids[0]
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}

// bind 绑定请求体并校验
func (a *App) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "invalid request body",
			Err:     err,
		}
	}
	return c.Validate(req)
}

// pathID 要求路径中的 id 是正整数
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ValidationFields(map[string]string{"id": "id must be a number"})
	}
	return uint(id), nil
}

// caller 取出认证中间件放入 context 的身份
func caller(c echo.Context) (*jwt.User, error) {
	user, ok := auth.UserFromContext(c.Request().Context())
	if !ok {
		return nil, apperr.Unauthenticated(auth.MessageMissingToken)
	}
	return user, nil
}
