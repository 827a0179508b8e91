package handler

import (
	"fmt"
	"reflect"
	"strings"

	"forum_server/internal/permission"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Trans 定义全局翻译器 (导出供 response.go 使用)
var Trans ut.Translator

// InitTrans 初始化翻译器并注册自定义校验规则
// locale 参数指定需要初始化的语言，例如 "zh" 或 "en"
func InitTrans(locale string) (err error) {

	// 确保 Validator 已初始化
	// 在 Gin v1.9+ 中 binding.Validator 可能为 nil，需要先初始化
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	// 修改 gin 框架中的 Validator 引擎属性，实现自定制
	// binding.Validator.Engine() 返回的是 interface{}，需要断言为 *validator.Validate 类型
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {

		// 报错信息使用 json/form tag 作为字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("form")
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err = registerRoleValidations(v); err != nil {
			return err
		}

		zhT := zh.New() // 初始化中文翻译器
		enT := en.New() // 初始化英文翻译器

		// 第一个参数是 fallback 语言环境，后面是支持的语言环境
		uni := ut.New(enT, zhT, enT)

		var ok bool
		Trans, ok = uni.GetTranslator(locale)
		if !ok {
			return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
		}

		switch locale {
		case "en":
			// 注册英文翻译
			err = en_translations.RegisterDefaultTranslations(v, Trans)
		case "zh":
			// 注册中文翻译
			err = zh_translations.RegisterDefaultTranslations(v, Trans)
		default:
			// 默认注册英文翻译
			err = en_translations.RegisterDefaultTranslations(v, Trans)
		}
		if err != nil {
			return err
		}
		err = registerRoleTranslations(v, locale)
	}
	return
}

// registerRoleValidations 注册角色枚举校验：global_role、community_role
func registerRoleValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("global_role", func(fl validator.FieldLevel) bool {
		return permission.GlobalRole(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("community_role", func(fl validator.FieldLevel) bool {
		return permission.CommunityRole(fl.Field().String()).Valid()
	})
}

func registerRoleTranslations(v *validator.Validate, locale string) error {
	messages := map[string]string{
		"global_role":    "{0} must be one of ADMIN MANAGER USER",
		"community_role": "{0} must be one of OWNER ADMIN MODERATOR MEMBER",
	}
	if locale == "zh" {
		messages = map[string]string{
			"global_role":    "{0}必须是 ADMIN、MANAGER、USER 之一",
			"community_role": "{0}必须是 OWNER、ADMIN、MODERATOR、MEMBER 之一",
		}
	}
	for tag, msg := range messages {
		err := v.RegisterTranslation(tag, Trans,
			func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			})
		if err != nil {
			return err
		}
	}
	return nil
}

// RemoveTopStruct 去除提示信息中的结构体名称，如 "LoginRequest.email" -> "email"
func RemoveTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string)
	for field, err := range fields {
		// 截取点号之后的部分
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// defaultValidator 是一个实现了 StructValidator 接口的结构体
// 用于在 Gin v1.9+ 中初始化 binding.Validator
type defaultValidator struct {
	validator *validator.Validate
}

// ValidateStruct 实现 StructValidator 接口的 ValidateStruct 方法
func (v *defaultValidator) ValidateStruct(obj any) error {
	return v.validator.Struct(obj)
}

// Engine 实现 StructValidator 接口的 Engine 方法
func (v *defaultValidator) Engine() any {
	return v.validator
}
