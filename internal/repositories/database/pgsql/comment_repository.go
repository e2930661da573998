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

type PgxCommentRepository struct {
	db *pgxpool.Pool
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{db: db}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

const commentColumns = `comment_id, post_id, owner_user_id, text, created_at, updated_at`

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:   m.CommentID,
		PostID:      m.PostID,
		OwnerUserID: m.OwnerUserID,
		Text:        m.Text,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var m models.Comment
	err := row.Scan(
		&m.CommentID,
		&m.PostID,
		&m.OwnerUserID,
		&m.Text,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan comment row: %w", err)
	}
	comment := toDomainComment(m)
	return &comment, nil
}

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	query := `
        INSERT INTO comments (comment_id, post_id, owner_user_id, text, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		comment.CommentID,
		comment.PostID,
		comment.OwnerUserID,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE comment_id = $1;`, commentColumns)
	return scanComment(r.db.QueryRow(ctx, query, commentID))
}

func (r *PgxCommentRepository) FindComments(ctx context.Context, postID string, limit int, offset int) ([]domain.Comment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM comments
        WHERE ($1 = '' OR post_id = $1)
        ORDER BY created_at ASC
        LIMIT $2 OFFSET $3;
    `, commentColumns)
	rows, err := r.db.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}

	return comments, nil
}

func (r *PgxCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	query := `
        UPDATE comments
        SET text = $1, updated_at = $2
        WHERE comment_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, comment.Text, comment.UpdatedAt, comment.CommentID)
	if err != nil {
		return fmt.Errorf("failed to execute update comment query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1;`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
