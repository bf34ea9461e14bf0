package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// BuildInfo is reported by GET /version.
type BuildInfo struct {
	Name    string
	Version string
}

type Handler struct {
	authService        *usecase.AuthService
	clubService        *usecase.ClubService
	templateService    *usecase.TemplateService
	competitionService *usecase.CompetitionService
	entryService       *usecase.EntryService
	pickService        *usecase.PickService
	build              BuildInfo
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	clubService *usecase.ClubService,
	templateService *usecase.TemplateService,
	competitionService *usecase.CompetitionService,
	entryService *usecase.EntryService,
	pickService *usecase.PickService,
	build BuildInfo,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Handler{
		authService:        authService,
		clubService:        clubService,
		templateService:    templateService,
		competitionService: competitionService,
		entryService:       entryService,
		pickService:        pickService,
		build:              build,
		logger:             logger.Named("httpapi"),
		validator:          validate,
	}
}

var errInvalidJSON = &usecase.ValidationError{Message: "Invalid JSON body"}

// decodeJSON reads a single JSON object into dst. Unknown fields are
// rejected. An empty body is accepted only when optional is set.
func decodeJSON(r *http.Request, dst any, optional bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidJSON
	}
	return nil
}

// validateRequest turns validator failures into field issues keyed by the
// JSON field name.
func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errInvalidJSON
	}

	issues := make([]usecase.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, usecase.Issue{Field: fe.Field(), Message: issueMessage(fe)})
	}
	return &usecase.ValidationError{Issues: issues}
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + fe.Param() + " is missing"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be >= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be <= " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &usecase.ValidationError{Issues: []usecase.Issue{{Field: key, Message: "must be a boolean"}}}
	}
	return v, nil
}

// fail logs unexpected errors before rendering them. Expected outcomes such
// as validation or authorization failures are logged at debug.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.DebugContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}
