package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateDTO 校验 DTO 的 validate 标签，返回第一个失败字段
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}
