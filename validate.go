package main

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var (
	errMissingFields = errors.New("missing required fields")
	errInvalidJob    = errors.New("invalid job")
)

// requiredFormFields lists the json names of the fields the writer cannot invent,
// in the order they are reported.
var requiredFormFields = []string{"fullName", "email", "jobTitle"}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

// Validate checks the fields the writer cannot invent.
func (f ResumeForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required, validation.By(notBlank)),
		validation.Field(&f.Email, validation.Required, validation.By(notBlank)),
		validation.Field(&f.JobTitle, validation.Required, validation.By(notBlank)),
	)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	var missing []string
	for _, name := range requiredFormFields {
		if _, ok := errs[name]; ok {
			missing = append(missing, name)
		}
	}
	return fmt.Errorf("%w: %s", errMissingFields, strings.Join(missing, ", "))
}

// Validate rejects messages that cannot be recorded as a generation.
func (j Job) Validate() error {
	err := validation.ValidateStruct(&j,
		validation.Field(&j.ID, validation.By(func(value any) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.ErrRequired
			}
			return nil
		})),
		validation.Field(&j.Kind, validation.Required, validation.In(JobKindCreate, JobKindReview)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidJob, err)
	}
	return nil
}
