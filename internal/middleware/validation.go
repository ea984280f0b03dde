package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"cobible/internal/domain"
	"cobible/internal/service"
	"cobible/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalSessionID = "validated_session_id"
	LocalLanguage  = "validated_language"
	LocalKind      = "validated_kind"
	LocalLimit     = "validated_limit"
	LocalBody      = "validated_body"
)

var kindTag = fmt.Sprintf("oneof=%s %s %s", service.KindShortcut, service.KindQuiz, service.KindFlashcard)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter of session routes.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.SessionID(id); len(errs) > 0 {
			return errs
		}

		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// ValidateLanguage requires a language from the path or the language query parameter.
func (vm *ValidationMiddleware) ValidateLanguage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		language := strings.TrimSpace(c.Params("language"))
		if language == "" {
			language = strings.TrimSpace(c.Query("language"))
		}
		if errs := vm.validator.Var("language", language, "required,max=64"); len(errs) > 0 {
			return errs
		}

		c.Locals(LocalLanguage, language)
		return c.Next()
	}
}

// ValidateKind validates the kind query parameter, defaulting to quiz.
func (vm *ValidationMiddleware) ValidateKind() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Query("kind", service.KindQuiz)
		if errs := vm.validator.Var("kind", kind, kindTag); len(errs) > 0 {
			return errs
		}

		c.Locals(LocalKind, kind)
		return c.Next()
	}
}

// ValidateResultsParams validates the optional language and limit query parameters.
func (vm *ValidationMiddleware) ValidateResultsParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{{Field: "limit", Message: "limit must be a number"}}
			}
			limit = parsed
		}
		if errs := vm.validator.Var("limit", limit, fmt.Sprintf("gte=0,lte=%d", service.MaxResultLimit)); len(errs) > 0 {
			return errs
		}

		c.Locals(LocalLanguage, strings.TrimSpace(c.Query("language")))
		c.Locals(LocalLimit, limit)
		return c.Next()
	}
}

// ValidateBody parses the JSON body into a new T, validates it and stores
// the pointer under LocalBody.
func ValidateBody[T any](vm *ValidationMiddleware) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(body); err != nil {
				return domain.ValidationErrors{{Field: "body", Message: "body must be valid JSON"}}
			}
		}
		if errs := vm.validator.Struct(body); len(errs) > 0 {
			return errs
		}

		c.Locals(LocalBody, body)
		return c.Next()
	}
}
