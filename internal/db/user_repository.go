package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flockreads-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is the common error for a document that does not exist in
// Firestore. Repositories wrap it with entity context; services match it
// with errors.Is.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

// GetByID retrieves a user document by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}
	return userFromDoc(docSnap.Ref.ID, docSnap.Data()), nil
}

// GetByEmail retrieves the user whose email field exactly matches the given
// address, as stored (case-sensitive). Returns ErrNotFound when no user
// carries that email.
func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	iter := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("user with email '%s' not found: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email '%s': %w", email, err)
	}
	return userFromDoc(docSnap.Ref.ID, docSnap.Data()), nil
}

// List retrieves every user document.
func (r *firestoreUserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.collect(ctx, r.client.Collection(usersCollection).Query)
}

// ListByGroupID retrieves the users whose groupId equals the given group.
// Documents written before the field rename only carry group_id, so both
// spellings are queried and merged.
func (r *firestoreUserRepository) ListByGroupID(ctx context.Context, groupID string) ([]*models.User, error) {
	if groupID == "" {
		return nil, errors.New("groupID cannot be empty for ListByGroupID operation")
	}
	coll := r.client.Collection(usersCollection)

	members, err := r.collect(ctx, coll.Where("groupId", "==", groupID))
	if err != nil {
		return nil, err
	}
	legacy, err := r.collect(ctx, coll.Where("group_id", "==", groupID))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(members))
	for _, u := range members {
		seen[u.ID] = true
	}
	for _, u := range legacy {
		if !seen[u.ID] {
			members = append(members, u)
		}
	}
	return members, nil
}

// SetRole writes the role and updatedAt fields on an existing user
// document. Firestore's Update fails with NotFound when the document does
// not exist, which keeps this a strict update rather than an upsert.
func (r *firestoreUserRepository) SetRole(ctx context.Context, userID, role string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for SetRole operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to set role for user '%s': %w", userID, err)
	}
	return nil
}

// Count returns the exact cardinality of the users collection using a
// store-side aggregation query, not a document scan.
func (r *firestoreUserRepository) Count(ctx context.Context) (int64, error) {
	return aggregateCount(ctx, r.client.Collection(usersCollection).Query)
}

func (r *firestoreUserRepository) collect(ctx context.Context, query firestore.Query) ([]*models.User, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		users = append(users, userFromDoc(docSnap.Ref.ID, docSnap.Data()))
	}
	return users, nil
}
