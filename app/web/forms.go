package web

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxTitleLen = 100

// titleForm is a submitted list or todo title, trimmed before validation
type titleForm struct {
	Title string `validate:"required,max=100"`
}

// titleMessages are validation messages for one kind of title
type titleMessages struct {
	required string
	length   string
}

var (
	listTitleMessages = titleMessages{
		required: "The list title is required.",
		length:   "List title must be between 1 and 100 characters.",
	}
	todoTitleMessages = titleMessages{
		required: "The todo title is required.",
		length:   "Todo title must be between 1 and 100 characters.",
	}
)

// formValidator checks submitted titles
type formValidator struct {
	validate *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{validate: validator.New()}
}

// checkTitle trims the title and returns it with validation messages, empty if valid
func (v *formValidator) checkTitle(raw string, msgs titleMessages) (title string, problems []string) {
	form := titleForm{Title: strings.TrimSpace(raw)}
	err := v.validate.Struct(form)
	if err == nil {
		return form.Title, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return form.Title, []string{err.Error()}
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, msgs.required)
		case "max":
			problems = append(problems, msgs.length)
		default:
			problems = append(problems, fe.Error())
		}
	}
	return form.Title, problems
}
