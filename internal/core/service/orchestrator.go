package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-bff/internal/api/metrics"
	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/guard"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

// Operation is one entry of the closed catalog. Each operation declares its
// own allowed-role set; there is no fallthrough and no implicit hierarchy.
type Operation struct {
	Name  string
	Roles domain.RoleSet
	Run   func(ctx context.Context, actor *domain.Session, args json.RawMessage) (any, error)
}

// Orchestrator holds the operation catalog and is the single place where all
// failure modes — denials, validation errors, upstream failures — converge
// into the uniform envelope.
type Orchestrator struct {
	guard    *guard.Guard
	api      ports.DataAPI
	validate *validator.Validate
	ops      map[string]Operation
	log      zerolog.Logger
	now      func() time.Time
}

func NewOrchestrator(g *guard.Guard, api ports.DataAPI, log zerolog.Logger) *Orchestrator {
	o := &Orchestrator{
		guard:    g,
		api:      api,
		validate: validator.New(),
		ops:      make(map[string]Operation),
		log:      log,
		now:      time.Now,
	}
	o.register(o.postOperations()...)
	o.register(o.userOperations()...)
	return o
}

func (o *Orchestrator) register(ops ...Operation) {
	for _, op := range ops {
		if _, dup := o.ops[op.Name]; dup {
			panic(fmt.Sprintf("orchestrator: duplicate operation %q", op.Name))
		}
		o.ops[op.Name] = op
	}
}

// Operations returns the sorted catalog names.
func (o *Orchestrator) Operations() []string {
	names := make([]string, 0, len(o.ops))
	for name := range o.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute resolves the named operation, authorizes the caller against the
// operation's allowed-role set, and runs its call plan. A denial
// short-circuits before any data API call is issued.
func (o *Orchestrator) Execute(ctx context.Context, token, name string, args json.RawMessage) ports.Envelope {
	start := time.Now()

	op, ok := o.ops[name]
	if !ok {
		metrics.OperationsTotal.WithLabelValues(name, "unknown").Inc()
		o.log.Warn().Str("operation", name).Err(domain.ErrUnknownOperation).Msg("operation rejected")
		return ports.Fail(MsgUnknownOperation)
	}

	decision := o.guard.Authorize(ctx, token, op.Roles)
	if !decision.Granted {
		metrics.OperationsTotal.WithLabelValues(name, "denied").Inc()
		metrics.AccessDeniedTotal.WithLabelValues(name, string(decision.Reason)).Inc()
		o.log.Info().
			Str("operation", name).
			Str("reason", string(decision.Reason)).
			Msg("access denied")
		return ports.Fail(MsgAccessDenied)
	}

	result, err := op.Run(ctx, decision.Session, args)
	if err != nil {
		metrics.OperationsTotal.WithLabelValues(name, "error").Inc()
		o.log.Warn().Err(err).Str("operation", name).Msg("operation failed")
		return ports.Fail(userMessage(err))
	}

	metrics.OperationsTotal.WithLabelValues(name, "ok").Inc()
	metrics.OperationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return ports.OK(result)
}

// userMessage maps an operation error to the message the client renders.
// Unexpected upstream failures collapse into a generic message: the real
// cause is logged, not leaked.
func userMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Detail
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, domain.ErrUserExists):
		return MsgLoginTaken
	case errors.Is(err, domain.ErrPostNotFound):
		return MsgPostNotFound
	case errors.Is(err, domain.ErrCommentNotFound):
		return MsgCommentNotFound
	default:
		return MsgUpstreamFailure
	}
}

// decodeArgs unmarshals and validates an operation's argument payload. An
// empty body is treated as an empty object so argument-less operations need
// no payload.
func decodeArgs[T any](v *validator.Validate, raw json.RawMessage, dst *T) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.NewValidationError("malformed arguments")
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.NewValidationError(fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
		return domain.NewValidationError("invalid arguments")
	}
	return nil
}
