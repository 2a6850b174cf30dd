package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var studentIDPattern = regexp.MustCompile(`^\d{2}-\d{4}-\d{6}$`)

// ValidStudentID reports whether id has the NN-NNNN-NNNNNN shape.
func ValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire names so clients can highlight them.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
			return ValidStudentID(fl.Field().String())
		})
	})
	return validate
}

// startInput mirrors StartRequest with the client's field names.
type startInput struct {
	LastName   string `json:"lastName" validate:"required"`
	FirstName  string `json:"firstName" validate:"required"`
	MiddleName string `json:"middleName" validate:"required"`
	StudentID  string `json:"studentID" validate:"required,student_id"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Course     string `json:"course" validate:"required"`
	Section    string `json:"section" validate:"required"`
	YearLevel  string `json:"yearLevel" validate:"required"`
}

// validateStart checks a normalised request. Failures are reported in a
// fixed order: missing fields, password mismatch, student id shape, email
// shape.
func validateStart(req StartRequest) error {
	in := startInput{
		LastName:   req.Profile.LastName,
		FirstName:  req.Profile.FirstName,
		MiddleName: req.Profile.MiddleName,
		StudentID:  req.StudentID,
		Email:      req.Email,
		Password:   req.Secret,
		Course:     req.Profile.Course,
		Section:    req.Profile.Section,
		YearLevel:  req.Profile.YearLevel,
	}

	err := getValidator().Struct(in)
	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return internal("validate start request", err)
	}

	var missing []string
	badField := map[string]bool{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		badField[fe.Field()] = true
	}

	switch {
	case len(missing) > 0:
		return ErrMissingField.withFields(missing...)
	case req.Secret != req.Confirmation:
		return ErrSecretMismatch.withFields("confirmPassword")
	case badField["studentID"]:
		return ErrMalformedStudentID.withFields("studentID")
	case badField["email"]:
		return ErrMalformedEmail.withFields("email")
	}
	return nil
}

// missingFields returns the names whose values are empty, in order.
// pairs alternates name, value.
func missingFields(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
