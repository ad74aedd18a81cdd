package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/mrlokans/shelfcache/internal/entities"
)

// itemInput is the validated shape of an item write.
type itemInput struct {
	Title    string `json:"title" validate:"notblank"`
	Author   string `json:"author"`
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

// annotationInput is the validated shape of an annotation write.
type annotationInput struct {
	Text string `json:"text" validate:"notblank"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	// Report JSON field names so errors line up with request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}()

// normalizeItem trims every text field of item in place and validates it.
func normalizeItem(item *entities.Item) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Author = strings.TrimSpace(item.Author)
	item.Summary = strings.TrimSpace(item.Summary)
	item.Language = strings.TrimSpace(item.Language)

	return validateStruct(itemInput{
		Title:    item.Title,
		Author:   item.Author,
		Summary:  item.Summary,
		Language: item.Language,
	})
}

// normalizeAnnotationText trims text and rejects it when nothing is left.
func normalizeAnnotationText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if err := validateStruct(annotationInput{Text: trimmed}); err != nil {
		return "", err
	}
	return trimmed, nil
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = friendlyMessage(fe)
	}
	return &entities.ValidationError{Fields: fields}
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "must not be blank"
	default:
		return "is invalid"
	}
}
