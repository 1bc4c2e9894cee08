package v1

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/adanyl0v/taskboard/internal/models"
)

const (
	taskStatusTag = "taskstatus"
	dueDateTag    = "duedate"
	notBlankTag   = "notblank"
)

var registerValidationsOnce sync.Once

// mustRegisterValidations adds the task rules to gin's validator engine.
func mustRegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("unexpected gin validator engine")
		}
		if err := v.RegisterValidation(taskStatusTag, validateTaskStatus); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation(dueDateTag, validateDueDate); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation(notBlankTag, validators.NotBlank); err != nil {
			panic(err)
		}
	})
}

// validateTaskStatus accepts an empty status; pair it with required
// where the status is mandatory.
func validateTaskStatus(fl validator.FieldLevel) bool {
	s := models.Status(fl.Field().String())
	return s == "" || s.Valid()
}

func validateDueDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDueDate(fl.Field().String())
	return err == nil
}
