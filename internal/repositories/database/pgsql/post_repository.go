package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	"github.com/tamarandofir/travelsync_backend/internal/models"
)

type PgxPostRepository struct {
	BaseRepository
}

func newPgxPostRepository(db *pgxpool.Pool) portsrepo.PostRepositoryFacade {
	return &PgxPostRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.PostRepositoryFacade = (*PgxPostRepository)(nil)

const postColumns = `post_id, owner_user_id, title, description, map_link, min_price, max_price, number_of_days, city, country, photos, created_at, updated_at`

func toModelPost(d domain.Post) models.Post {
	return models.Post{
		PostID:       d.PostID,
		OwnerUserID:  d.OwnerUserID,
		Title:        d.Title,
		Description:  d.Description,
		MapLink:      d.MapLink,
		MinPrice:     d.MinPrice,
		MaxPrice:     d.MaxPrice,
		NumberOfDays: d.NumberOfDays,
		City:         d.Location.City,
		Country:      d.Location.Country,
		Photos:       d.Photos,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:       m.PostID,
		OwnerUserID:  m.OwnerUserID,
		Title:        m.Title,
		Description:  m.Description,
		MapLink:      m.MapLink,
		MinPrice:     m.MinPrice,
		MaxPrice:     m.MaxPrice,
		NumberOfDays: m.NumberOfDays,
		Location:     domain.Location{City: m.City, Country: m.Country},
		Photos:       m.Photos,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var m models.Post
	err := row.Scan(
		&m.PostID,
		&m.OwnerUserID,
		&m.Title,
		&m.Description,
		&m.MapLink,
		&m.MinPrice,
		&m.MaxPrice,
		&m.NumberOfDays,
		&m.City,
		&m.Country,
		&m.Photos,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}
	post := toDomainPost(m)
	return &post, nil
}

func (r *PgxPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	m := toModelPost(post)
	query := `
        INSERT INTO posts (post_id, owner_user_id, title, description, map_link, min_price, max_price, number_of_days, city, country, photos, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.PostID,
		m.OwnerUserID,
		m.Title,
		m.Description,
		m.MapLink,
		m.MinPrice,
		m.MaxPrice,
		m.NumberOfDays,
		m.City,
		m.Country,
		m.Photos,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *PgxPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE post_id = $1;`, postColumns)
	return scanPost(r.Pool.QueryRow(ctx, query, postID))
}

func (r *PgxPostRepository) FindPosts(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM posts
        WHERE ($1 = '' OR owner_user_id = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `, postColumns)
	rows, err := r.Pool.Query(ctx, query, ownerUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", rows.Err())
	}

	return posts, nil
}

func (r *PgxPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	m := toModelPost(post)
	query := `
        UPDATE posts
        SET title = $1, description = $2, map_link = $3, min_price = $4, max_price = $5,
            number_of_days = $6, city = $7, country = $8, photos = $9, updated_at = $10
        WHERE post_id = $11;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Description,
		m.MapLink,
		m.MinPrice,
		m.MaxPrice,
		m.NumberOfDays,
		m.City,
		m.Country,
		m.Photos,
		m.UpdatedAt,
		m.PostID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update post query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeletePost removes the post and its comments in one transaction.
func (r *PgxPostRepository) DeletePost(ctx context.Context, postID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1;`, postID); err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM posts WHERE post_id = $1;`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}
