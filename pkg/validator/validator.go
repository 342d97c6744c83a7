package validator

import (
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/logger"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	zhTrans "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 替换 gin 默认校验器的提示语言，只初始化一次
// language 支持 en、zh，其它值按 en 处理
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Warnf("gin validator engine is not go-playground/validator")
			return
		}
		// 提示里使用 form/json 里的字段名
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale, zh.New())
		language = strings.ToLower(language)
		t, found := uni.GetTranslator(language)
		if !found {
			t, _ = uni.GetTranslator("en")
			language = "en"
		}

		var err error
		switch language {
		case "zh":
			err = zhTrans.RegisterDefaultTranslations(v, t)
		default:
			err = enTrans.RegisterDefaultTranslations(v, t)
		}
		if err != nil {
			logger.Errorf("register validator translations: %v", err)
			return
		}
		trans = t
	})
}

// Translate 把绑定错误转换成带错误码的可读提示
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if trans == nil || !errors.As(err, &verrs) {
		return errors.WithCode(ecode.ValidateErr, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, m := range verrs.Translate(trans) {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return errors.WithCode(ecode.ValidateErr, strings.Join(msgs, "; "))
}
