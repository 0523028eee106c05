// Package errors defines the categorized error type shared by the
// repositories, the domain managers and the HTTP layer, with optional
// Sentry reporting.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrorCategory classifies failures; each maps to one HTTP status
type ErrorCategory string

// CategorizedError lets wrapped errors declare their own category
type CategorizedError interface {
	error
	ErrorCategory() ErrorCategory
}

const (
	// Domain outcomes, mapped to HTTP statuses at the API boundary
	CategoryNotFound        ErrorCategory = "not-found"
	CategoryInvalidInput    ErrorCategory = "invalid-input"
	CategoryConflict        ErrorCategory = "conflict"
	CategoryUpstreamFailure ErrorCategory = "upstream-failure"
	CategoryValidation      ErrorCategory = "validation"
	CategoryForbidden       ErrorCategory = "forbidden"

	// Infrastructure categories
	CategoryDatabase      ErrorCategory = "database"
	CategoryObjectStore   ErrorCategory = "object-store"
	CategoryVideoProbe    ErrorCategory = "video-probe"
	CategoryFileIO        ErrorCategory = "file-io"
	CategoryNetwork       ErrorCategory = "network"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryHTTP          ErrorCategory = "http-request"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryCancellation  ErrorCategory = "cancellation"
	CategoryGeneric       ErrorCategory = "generic"
)

// Priorities used as Sentry levels
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ComponentUnknown is reported when no registry entry matches the caller.
const ComponentUnknown = "unknown"

const selfPackage = "github.com/tphakala/video-enrichment-api/internal/errors"

// hasActiveReporting is true while a telemetry reporter is installed and enabled
var hasActiveReporting atomic.Bool

// EnhancedError carries a category that the HTTP layer maps to a status code,
// plus the component and context sent to telemetry.
type EnhancedError struct {
	Err       error          // Original error
	component string         // Component where error occurred (lazily detected)
	Category  ErrorCategory  // Error category for better grouping
	Priority  string         // Explicit priority override (optional)
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
	reported  bool
	mu        sync.RWMutex
	detected  bool
}

// Error returns the message of the wrapped error
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap returns the wrapped error
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is matches another EnhancedError of the same category
func (ee *EnhancedError) Is(target error) bool {
	if ee2, ok := target.(*EnhancedError); ok {
		return ee.Category == ee2.Category
	}
	return Is(ee.Err, target)
}

// GetComponent returns the component, detecting it on first use
func (ee *EnhancedError) GetComponent() string {
	ee.mu.RLock()
	if ee.detected || ee.component != "" {
		component := ee.component
		ee.mu.RUnlock()
		return component
	}
	ee.mu.RUnlock()

	ee.mu.Lock()
	defer ee.mu.Unlock()

	if ee.component == "" && !ee.detected {
		ee.component = detectComponent()
		ee.detected = true
		if ee.component == "" {
			ee.component = ComponentUnknown
		}
	}

	return ee.component
}

// GetCategory returns the category as a string, for telemetry tags
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetPriority returns the priority override, or ""
func (ee *EnhancedError) GetPriority() string {
	return ee.Priority
}

// GetContext returns a copy of the error context
func (ee *EnhancedError) GetContext() map[string]any {
	ee.mu.RLock()
	defer ee.mu.RUnlock()

	if ee.Context == nil {
		return nil
	}

	contextCopy := make(map[string]any, len(ee.Context))
	maps.Copy(contextCopy, ee.Context)
	return contextCopy
}

// GetMessage returns the client-facing message
func (ee *EnhancedError) GetMessage() string {
	if ee.Err != nil {
		return ee.Err.Error()
	}
	return ""
}

// MarkReported prevents a second telemetry event for the same error
func (ee *EnhancedError) MarkReported() {
	ee.mu.Lock()
	defer ee.mu.Unlock()
	ee.reported = true
}

// IsReported tells whether telemetry already saw this error
func (ee *EnhancedError) IsReported() bool {
	ee.mu.RLock()
	defer ee.mu.RUnlock()
	return ee.reported
}

// ErrorBuilder assembles an EnhancedError
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	priority  string
	context   map[string]any
}

// New starts a builder around err
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf starts a builder around a formatted message
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component names the subsystem, e.g. "objectstore". Detected from the caller when unset.
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Priority overrides the priority derived from the category
func (eb *ErrorBuilder) Priority(priority string) *ErrorBuilder {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		eb.priority = priority
	default:
		if priority != "" {
			eb.priority = PriorityMedium
		}
	}
	return eb
}

// Context attaches a key/value, such as the entity id being looked up
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Timing records how long the failed operation ran
func (eb *ErrorBuilder) Timing(operation string, duration time.Duration) *ErrorBuilder {
	eb.Context("operation", operation)
	eb.context["duration_ms"] = duration.Milliseconds()
	return eb
}

// Build finalizes the error and reports it when a telemetry reporter is installed
func (eb *ErrorBuilder) Build() *EnhancedError {
	// Fast path: skip detection when nothing is listening
	if !hasActiveReporting.Load() {
		ee := &EnhancedError{
			Err:       eb.err,
			component: eb.component,
			Category:  eb.category,
			Priority:  eb.priority,
			Context:   eb.context,
			Timestamp: time.Now(),
			detected:  eb.component != "",
		}
		if ee.component == "" {
			ee.component = ComponentUnknown
			ee.detected = true
		}
		if ee.Category == "" {
			ee.Category = detectCategory(eb.err)
		}
		return ee
	}

	if eb.component == "" {
		eb.component = detectComponent()
	}
	if eb.category == "" {
		eb.category = detectCategory(eb.err)
	}

	ee := &EnhancedError{
		Err:       eb.err,
		component: eb.component,
		Category:  eb.category,
		Priority:  eb.priority,
		Context:   eb.context,
		Timestamp: time.Now(),
		detected:  true,
	}

	reportToTelemetry(ee)

	return ee
}

// componentRegistry maps package path fragments to component names
var (
	componentRegistry = make(map[string]string)
	registryMutex     sync.RWMutex
)

// RegisterComponent maps a package path fragment to a component name
func RegisterComponent(packagePattern, componentName string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	componentRegistry[packagePattern] = componentName
}

func init() {
	RegisterComponent("internal/api", "api")
	RegisterComponent("internal/domain", "domain")
	RegisterComponent("internal/datastore", "datastore")
	RegisterComponent("internal/objectstore", "objectstore")
	RegisterComponent("internal/videoprobe", "videoprobe")
	RegisterComponent("internal/conf", "configuration")
	RegisterComponent("internal/telemetry", "telemetry")
}

// detectComponent walks the call stack to find the first registered component
func detectComponent() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, selfPackage) {
			if component := lookupComponent(frame.Function); component != ComponentUnknown {
				return component
			}
		}
		if !more {
			break
		}
	}

	return ComponentUnknown
}

// lookupComponent finds the registry entry matching funcName
func lookupComponent(funcName string) string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	for pattern, component := range componentRegistry {
		if strings.Contains(funcName, pattern) {
			return component
		}
	}

	return ComponentUnknown
}

// detectCategory picks a category from a wrapped error when none was given
func detectCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryGeneric
	}

	var catErr CategorizedError
	if stderrors.As(err, &catErr) {
		return catErr.ErrorCategory()
	}

	var enhErr *EnhancedError
	if stderrors.As(err, &enhErr) && enhErr.Category != "" {
		return enhErr.Category
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case stderrors.Is(err, context.Canceled):
		return CategoryCancellation
	}

	return CategoryGeneric
}

// Convenience constructors for the domain outcomes

// NotFound creates a not-found error with the given message
func NotFound(component, format string, args ...any) *EnhancedError {
	return Newf(format, args...).Component(component).Category(CategoryNotFound).Build()
}

// InvalidInput creates an invalid-input error with the given message
func InvalidInput(component, format string, args ...any) *EnhancedError {
	return Newf(format, args...).Component(component).Category(CategoryInvalidInput).Build()
}

// Upstream wraps a collaborator failure under a client-facing message.
// The cause stays reachable through the "cause" context key.
func Upstream(component string, cause error, message string) *EnhancedError {
	b := New(NewStd(message)).Component(component).Category(CategoryUpstreamFailure).Priority(PriorityHigh)
	if cause != nil {
		b = b.Context("cause", cause.Error())
	}
	return b.Build()
}

// ValidationError builds a CategoryValidation error with message
func ValidationError(message string) *EnhancedError {
	return New(NewStd(message)).
		Category(CategoryValidation).
		Build()
}

// stdlib passthroughs, so callers import one errors package

// NewStd is errors.New, for sentinels that need no metadata
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is is errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap is errors.Unwrap
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join is errors.Join
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// IsCategory reports whether err wraps an EnhancedError of category.
func IsCategory(err error, category ErrorCategory) bool {
	var enhancedErr *EnhancedError
	return As(err, &enhancedErr) && enhancedErr.Category == category
}

// CategoryOf returns the category of the outermost EnhancedError in err's tree,
// or CategoryGeneric when there is none.
func CategoryOf(err error) ErrorCategory {
	var enhancedErr *EnhancedError
	if As(err, &enhancedErr) {
		return enhancedErr.Category
	}
	return CategoryGeneric
}

// IsNotFound reports a missing video, taxonomy, entity, gallery or object.
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}
