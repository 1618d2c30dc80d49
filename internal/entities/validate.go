package entities

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateReadingSession, ReadingSession{})
	return v
}

func validateReadingSession(sl validator.StructLevel) {
	session := sl.Current().Interface().(ReadingSession)
	if session.StartDate != nil && session.FinishDate != nil &&
		session.FinishDate.Before(*session.StartDate) {
		sl.ReportError(session.FinishDate, "FinishDate", "finish_date", "gtefield", "StartDate")
	}
}

// Validate checks an entity's field constraints. Backends call this on every
// insert and update before touching storage.
func Validate(entity any) error {
	return validate.Struct(entity)
}
