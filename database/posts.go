package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"portfolio/constants"
)

var (
	ErrNotFound = errors.New("post not found")
	// ErrPolicyDenied is returned when a row-level security policy blocked
	// the statement.
	ErrPolicyDenied = errors.New("blocked by access policy")
)

// SQLSTATE insufficient_privilege, which Postgres raises for RLS violations.
const pgInsufficientPrivilege = "42501"

// PostStore reads and writes posts through gorm.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// ListPosts returns every post, newest (highest id) first.
func (s *PostStore) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	result := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(constants.MAX_POSTS_TO_SHOW).
		Find(&posts)
	if result.Error != nil {
		return nil, classify(result.Error)
	}
	return posts, nil
}

func (s *PostStore) GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	result := s.db.WithContext(ctx).First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, classify(result.Error)
	}
	return &post, nil
}

// InsertPost stores a new post and returns the id the database assigned.
func (s *PostStore) InsertPost(ctx context.Context, post *Post) (int64, error) {
	post.ID = 0
	result := s.db.WithContext(ctx).Create(post)
	if result.Error != nil {
		return 0, classify(result.Error)
	}
	return post.ID, nil
}

// UpdatePost writes only the given columns of the post with the given id.
func (s *PostStore) UpdatePost(ctx context.Context, id int64, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func (s *PostStore) DeletePost(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&Post{}, id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func classify(err error) error {
	if IsPolicyViolation(err) {
		return fmt.Errorf("%w: %v", ErrPolicyDenied, err)
	}
	return err
}

// IsPolicyViolation reports whether err comes from an access-control policy
// rejecting a write.
func IsPolicyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPolicyDenied) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "row-level security") || strings.Contains(msg, "policy")
}
