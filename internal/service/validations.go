package service

import (
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		validate.RegisterStructValidation(func(sl validator.StructLevel) {
			req := sl.Current().Interface().(CreateTaskRequest)
			// A recurrence window cannot close before it opens
			if req.EndDate != nil && req.EndDate.Before(req.DueDate) {
				sl.ReportError(req.EndDate, "EndDate", "EndDate", "gtefield", "DueDate")
			}
		}, CreateTaskRequest{})
	})
}
