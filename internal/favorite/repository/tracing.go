package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/social-favorites/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// TracingFavoriteRepository wraps a FavoriteRepository with tracing
type TracingFavoriteRepository struct {
	next domain.FavoriteRepository
}

// NewTracingFavoriteRepository creates a new repository with tracing
func NewTracingFavoriteRepository(next domain.FavoriteRepository) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{next: next}
}

func targetAttrs(userID uint, targetType domain.TargetType, targetID uint) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.Int("favorite.user_id", int(userID)),
		attribute.String("favorite.target_type", string(targetType)),
		attribute.Int("favorite.target_id", int(targetID)),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// FirstOrCreate with tracing
func (r *TracingFavoriteRepository) FirstOrCreate(ctx context.Context, f *domain.Favorite) (created bool, err error) {
	ctx, span := tracer.Start(ctx, "repository.FirstOrCreate", targetAttrs(f.UserID, f.FavoritableType, f.FavoritableID))
	defer func() { endSpan(span, err) }()

	created, err = r.next.FirstOrCreate(ctx, f)
	span.SetAttributes(
		attribute.Bool("favorite.created", created),
		attribute.Int("favorite.id", int(f.ID)),
	)
	return created, err
}

// FindOwned with tracing
func (r *TracingFavoriteRepository) FindOwned(ctx context.Context, userID uint, targetType domain.TargetType, targetID uint) (f *domain.Favorite, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindOwned", targetAttrs(userID, targetType, targetID))
	defer func() { endSpan(span, err) }()

	return r.next.FindOwned(ctx, userID, targetType, targetID)
}

// Delete with tracing
func (r *TracingFavoriteRepository) Delete(ctx context.Context, id uint) (rows int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int("favorite.id", int(id))),
	)
	defer func() { endSpan(span, err) }()

	rows, err = r.next.Delete(ctx, id)
	span.SetAttributes(attribute.Int64("db.rows_affected", rows))
	return rows, err
}

// FindByUser with tracing
func (r *TracingFavoriteRepository) FindByUser(ctx context.Context, userID uint) (favorites []domain.Favorite, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUser",
		trace.WithAttributes(attribute.Int("favorite.user_id", int(userID))),
	)
	defer func() { endSpan(span, err) }()

	favorites, err = r.next.FindByUser(ctx, userID)
	span.SetAttributes(attribute.Int("favorite.count", len(favorites)))
	return favorites, err
}

// FindFollowers with tracing
func (r *TracingFavoriteRepository) FindFollowers(ctx context.Context, targetType domain.TargetType, targetID uint) (favorites []domain.Favorite, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindFollowers",
		trace.WithAttributes(
			attribute.String("favorite.target_type", string(targetType)),
			attribute.Int("favorite.target_id", int(targetID)),
		),
	)
	defer func() { endSpan(span, err) }()

	favorites, err = r.next.FindFollowers(ctx, targetType, targetID)
	span.SetAttributes(attribute.Int("favorite.count", len(favorites)))
	return favorites, err
}

// CountByUser with tracing
func (r *TracingFavoriteRepository) CountByUser(ctx context.Context, userID uint) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.CountByUser",
		trace.WithAttributes(attribute.Int("favorite.user_id", int(userID))),
	)
	defer func() { endSpan(span, err) }()

	return r.next.CountByUser(ctx, userID)
}
