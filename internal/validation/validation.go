package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"leadflow/internal/apperr"
)

var validate = validator.New()

// labels maps struct field names to the names users see in error messages.
var labels = map[string]string{
	"FirstName":  "First Name",
	"LastName":   "Last Name",
	"Email":      "Email",
	"Phone":      "Phone",
	"Password":   "Password",
	"Role":       "Role",
	"Status":     "Status",
	"AssignedTo": "Assigned to",
}

// Struct validates a request payload and aggregates every field violation
// into a single ValidationError, so the client sees the full list at once.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return apperr.Validation(msgs...)
}

func message(fe validator.FieldError) string {
	label := labels[fe.StructField()]
	if label == "" {
		label = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Invalid email"
	case "min":
		if fe.StructField() == "Password" {
			return "Password must be at least 6 characters long"
		}
		return fmt.Sprintf("%s is required", label)
	case "max":
		if fe.StructField() == "Password" {
			return "Password must be atmost 20 characters long"
		}
		return fmt.Sprintf("%s is too long", label)
	case "oneof":
		if fe.StructField() == "Role" {
			return "Role must be either ADMIN or EMPLOYEE"
		}
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be positive", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}
