package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/social-favorites/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository wraps a UserRepository with a span per call
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a new repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(attribute.String("user.email", user.Email)),
	)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, user); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (user *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

// FindByIDs with tracing
func (r *TracingUserRepository) FindByIDs(ctx context.Context, ids []uint) (users []domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByIDs",
		trace.WithAttributes(attribute.Int("user.ids", len(ids))),
	)
	defer func() { finish(span, err) }()

	users, err = r.next.FindByIDs(ctx, ids)
	span.SetAttributes(attribute.Int("user.found", len(users)))
	return users, err
}

// FindByEmail with tracing
func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (user *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByEmail",
		trace.WithAttributes(attribute.String("user.email", email)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByEmail(ctx, email)
}

// UpsertByEmail with tracing
func (r *TracingUserRepository) UpsertByEmail(ctx context.Context, user *domain.User) (err error) {
	ctx, span := tracer.Start(ctx, "repository.UpsertByEmail",
		trace.WithAttributes(attribute.String("user.email", user.Email)),
	)
	defer func() { finish(span, err) }()

	return r.next.UpsertByEmail(ctx, user)
}

// Count with tracing
func (r *TracingUserRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer func() { finish(span, err) }()

	return r.next.Count(ctx)
}
