package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/junaidrashid-git/teazen/errs"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the validator tags and reports failures keyed by form
// field name.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs.Validation("Please correct the errors below.", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "number":
		return "Enter a whole number."
	case "gte", "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return "Enter a valid value."
	}
}

// mergeFields combines two validation errors into one.
func mergeFields(err error, field, msg string) error {
	fields := map[string]string{}
	for k, v := range errs.FieldErrors(err) {
		fields[k] = v
	}
	if _, ok := fields[field]; !ok {
		fields[field] = msg
	}
	return errs.Validation("Please correct the errors below.", fields)
}

var slugDash = regexp.MustCompile(`[-\s]+`)
var slugStrip = regexp.MustCompile(`[^\w\s-]`)

// Slugify turns a title into a URL slug, dropping Vietnamese diacritics:
// "Trà Sen Tây Hồ" becomes "tra-sen-tay-ho".
func Slugify(title string) string {
	title = strings.NewReplacer("đ", "d", "Đ", "D").Replace(title)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, title)
	if err != nil {
		plain = title
	}
	var b strings.Builder
	for _, r := range plain {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(strings.TrimSpace(b.String()))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}
