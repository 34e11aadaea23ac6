package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Hata mesajlarında struct alan adı yerine json tag kullanılsın
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct istek gövdesini doğrular; hata varsa alan adı -> Türkçe mesaj haritası döner.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": "Geçersiz veri"}
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Bu alan zorunlu"
	case "email":
		return "Geçerli bir email adresi girin"
	case "gt":
		return fmt.Sprintf("%s değerinden büyük olmalı", fe.Param())
	case "gte":
		return fmt.Sprintf("En az %s olmalı", fe.Param())
	case "min":
		return fmt.Sprintf("En az %s karakter olmalı", fe.Param())
	case "max":
		return fmt.Sprintf("En fazla %s karakter olmalı", fe.Param())
	default:
		return "Geçersiz değer"
	}
}

// BadRequest alan hatalarını tek tip 400 gövdesiyle döndürür.
func BadRequest(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Doğrulama hatası",
		"fields": fields,
	})
}
