package query

import (
	"context"

	"github.com/tair/social-favorites/internal/post/domain"
)

// withAuthors renders posts with their authors using one batched lookup
func withAuthors(ctx context.Context, users domain.UserLookup, posts []domain.Post) ([]domain.PostWithAuthor, error) {
	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			ids = append(ids, p.UserID)
		}
	}

	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint]*domain.Author, len(found))
	for _, u := range found {
		authors[u.ID] = &domain.Author{ID: u.ID, Name: u.Name}
	}

	out := make([]domain.PostWithAuthor, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].WithAuthor(authors[posts[i].UserID]))
	}
	return out, nil
}
