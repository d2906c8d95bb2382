package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	RegisterValidators()
}

// RegisterValidators 向gin的校验引擎注册自定义tag
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// ValidationErrors 将绑定/校验错误转换为 字段名 → 错误描述列表
// 键使用Go结构体字段名(Title),JSON解析错误使用JSON路径($、$.title)
func ValidationErrors(err error) map[string][]string {
	errs := make(map[string][]string)

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			errs[fe.Field()] = append(errs[fe.Field()], fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		path := "$"
		if typeErr.Field != "" {
			path += "." + typeErr.Field
		}
		errs[path] = append(errs[path], fmt.Sprintf(
			"The JSON value could not be converted to %s. Path: %s", typeErr.Type, path))
	case errors.As(err, &syntaxErr):
		errs["$"] = append(errs["$"], fmt.Sprintf(
			"The JSON value is malformed at offset %d.", syntaxErr.Offset))
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		errs["$"] = append(errs["$"], "A non-empty request body is required.")
	default:
		errs["$"] = append(errs["$"], err.Error())
	}
	return errs
}

// InvalidParam 路径参数错误
func InvalidParam(name, value string) map[string][]string {
	return map[string][]string{
		name: {fmt.Sprintf("The value '%s' is not valid.", value)},
	}
}

// fieldMessage 单个字段的错误描述
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must be a string or array type with a maximum length of '%s'.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
