package utils

import (
	"regexp"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	companyNamePattern = regexp.MustCompile(`^[\p{Han}a-zA-Z0-9\s&.-]+$`)
	personNamePattern  = regexp.MustCompile(`^[\p{Han}a-zA-Z\s]+$`)
	phonePattern       = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

type customValidation struct {
	tag     string
	fn      validator.Func
	message string
}

var customValidations = []customValidation{
	{"companyname", validateCompanyName, "{0} can only contain letters, numbers, spaces, and &.-"},
	{"personname", validatePersonName, "{0} can only contain letters and spaces"},
	{"phone", validatePhone, "{0} must be a phone number with 10 to 15 digits"},
	{"strongpassword", validateStrongPassword, "{0} must contain a lowercase letter, an uppercase letter and a number"},
}

// RegisterValidations 注册自定义校验规则及其翻译
func RegisterValidations(validate *validator.Validate, trans ut.Translator) error {
	for _, cv := range customValidations {
		if err := validate.RegisterValidation(cv.tag, cv.fn); err != nil {
			return err
		}

		message := cv.message
		if err := validate.RegisterTranslation(cv.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(cv.tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			},
		); err != nil {
			return err
		}
	}
	return nil
}

func validateCompanyName(fl validator.FieldLevel) bool {
	return companyNamePattern.MatchString(fl.Field().String())
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if !phonePattern.MatchString(phone) {
		return false
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return len(digits) >= 10 && len(digits) <= 15
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
