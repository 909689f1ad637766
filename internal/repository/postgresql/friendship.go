package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/friendship"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type friendshipRepository struct {
	db *database.DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *database.DB) friendship.Repository {
	return &friendshipRepository{db: db}
}

// Create inserts a new friend request
func (r *friendshipRepository) Create(ctx context.Context, f *friendship.Friendship) error {
	q := GetQuerier(ctx, r.db)

	if f.ID == "" {
		f.ID = newID()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Status == "" {
		f.Status = friendship.StatusPending
	}

	query := `
		INSERT INTO friendships (id, requester_id, addressee_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		f.ID,
		f.RequesterID,
		f.AddresseeID,
		string(f.Status),
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create friendship: %w", err)
	}

	return nil
}

// GetByID retrieves a friendship by ID
func (r *friendshipRepository) GetByID(ctx context.Context, id string) (*friendship.Friendship, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friendships
		WHERE id = $1
	`

	f, err := scanFriendship(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, friendship.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}

	return f, nil
}

// GetBetween retrieves the friendship between two users in either direction
func (r *friendshipRepository) GetBetween(ctx context.Context, userA, userB string) (*friendship.Friendship, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, requester_id, addressee_id, status, created_at, updated_at
		FROM friendships
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`

	f, err := scanFriendship(q.QueryRow(ctx, query, userA, userB))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, friendship.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("failed to get friendship between users: %w", err)
	}

	return f, nil
}

func scanFriendship(row pgx.Row) (*friendship.Friendship, error) {
	var f friendship.Friendship
	var status string
	err := row.Scan(
		&f.ID,
		&f.RequesterID,
		&f.AddresseeID,
		&status,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Status = friendship.Status(status)
	return &f, nil
}

// UpdateStatus transitions a friend request to a new status
func (r *friendshipRepository) UpdateStatus(ctx context.Context, id string, status friendship.Status) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE friendships SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update friendship status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return friendship.ErrFriendshipNotFound
	}

	return nil
}

// ListPending returns pending requests addressed to the user, newest first,
// with each requester's summary joined in
func (r *friendshipRepository) ListPending(ctx context.Context, addresseeID string) ([]*friendship.Friendship, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT f.id, f.requester_id, f.addressee_id, f.status, f.created_at, f.updated_at,
		       u.id, u.first_name, u.last_name, u.avatar
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.addressee_id = $1 AND f.status = 'pending'
		ORDER BY f.created_at DESC
	`

	rows, err := q.Query(ctx, query, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending friendships: %w", err)
	}
	defer rows.Close()

	var requests []*friendship.Friendship
	for rows.Next() {
		var f friendship.Friendship
		var status string
		if err := rows.Scan(
			&f.ID,
			&f.RequesterID,
			&f.AddresseeID,
			&status,
			&f.CreatedAt,
			&f.UpdatedAt,
			&f.Requester.ID,
			&f.Requester.FirstName,
			&f.Requester.LastName,
			&f.Requester.Avatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		f.Status = friendship.Status(status)
		requests = append(requests, &f)
	}

	return requests, nil
}

// CountPending returns how many pending requests the user has received
func (r *friendshipRepository) CountPending(ctx context.Context, addresseeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM friendships WHERE addressee_id = $1 AND status = 'pending'`

	var count int
	if err := q.QueryRow(ctx, query, addresseeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending friendships: %w", err)
	}

	return count, nil
}
