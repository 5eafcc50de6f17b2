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

const groupsCollection = "groups"

// groupTxMaxAttempts bounds the optimistic retry loop Firestore runs for a
// transaction before surfacing Aborted.
const groupTxMaxAttempts = 5

// ErrConflict is returned when a transaction ran out of retries against
// concurrent writers touching the same documents.
var ErrConflict = errors.New("transaction conflict: retries exhausted")

// firestoreGroupRepository implements the GroupRepository interface using Firestore.
type firestoreGroupRepository struct {
	client *firestore.Client
}

// NewFirestoreGroupRepository creates a new instance of firestoreGroupRepository.
func NewFirestoreGroupRepository(client *firestore.Client) GroupRepository {
	return &firestoreGroupRepository{client: client}
}

// GetByID retrieves a group document by its ID.
func (r *firestoreGroupRepository) GetByID(ctx context.Context, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, errors.New("groupID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(groupsCollection).Doc(groupID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("group with ID '%s' not found: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group with ID '%s': %w", groupID, err)
	}
	return groupFromDoc(docSnap.Ref.ID, docSnap.Data()), nil
}

// List retrieves every group document.
func (r *firestoreGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	iter := r.client.Collection(groupsCollection).Documents(ctx)
	defer iter.Stop()

	var groups []*models.Group
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate groups: %w", err)
		}
		groups = append(groups, groupFromDoc(docSnap.Ref.ID, docSnap.Data()))
	}
	return groups, nil
}

// Count returns the exact cardinality of the groups collection via a
// store-side aggregation.
func (r *firestoreGroupRepository) Count(ctx context.Context) (int64, error) {
	return aggregateCount(ctx, r.client.Collection(groupsCollection).Query)
}

// CreateWithLeader creates a group and promotes its leader in one
// transaction: either the group document (memberCount 1) and the leader's
// groupId/role update both commit, or neither does. A concurrent reader
// never observes a group without its leader's membership updated, or vice
// versa. The group ID is allocated inside the transaction body, which is
// safe to re-run: a retried attempt simply allocates a fresh ID.
func (r *firestoreGroupRepository) CreateWithLeader(ctx context.Context, name, leaderID string) (string, error) {
	if name == "" {
		return "", errors.New("name cannot be empty for CreateWithLeader operation")
	}
	if leaderID == "" {
		return "", errors.New("leaderID cannot be empty for CreateWithLeader operation")
	}

	var groupID string
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		leaderRef := r.client.Collection(usersCollection).Doc(leaderID)
		leaderSnap, err := tx.Get(leaderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("leader with ID '%s' not found: %w", leaderID, ErrNotFound)
			}
			return fmt.Errorf("failed to read leader '%s': %w", leaderID, err)
		}
		leader := userFromDoc(leaderSnap.Ref.ID, leaderSnap.Data())

		groupRef := r.client.Collection(groupsCollection).NewDoc()
		if err := tx.Create(groupRef, map[string]interface{}{
			"name":        name,
			"leaderId":    leaderID,
			"leaderName":  leader.LeaderDisplayName(),
			"memberCount": 1,
			"createdAt":   firestore.ServerTimestamp,
			"updatedAt":   firestore.ServerTimestamp,
		}); err != nil {
			return fmt.Errorf("failed to create group document: %w", err)
		}

		if err := tx.Update(leaderRef, []firestore.Update{
			{Path: "groupId", Value: groupRef.ID},
			{Path: "role", Value: models.RoleLeader},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			return fmt.Errorf("failed to update leader '%s': %w", leaderID, err)
		}

		groupID = groupRef.ID
		return nil
	}, firestore.MaxAttempts(groupTxMaxAttempts))

	if err != nil {
		if status.Code(err) == codes.Aborted {
			return "", fmt.Errorf("create group '%s': %w", name, ErrConflict)
		}
		return "", err
	}
	return groupID, nil
}

// AttachMember sets the user's groupId and increments the target group's
// memberCount in one transaction, so concurrent attaches against the same
// group cannot lose an increment. When the group document does not exist
// the user is still attached and the counter is left untouched; the
// resulting count mismatch is observable, not hidden. Moving a user who
// already belongs to another group does not decrement that group's count.
func (r *firestoreGroupRepository) AttachMember(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return errors.New("groupID cannot be empty for AttachMember operation")
	}
	if userID == "" {
		return errors.New("userID cannot be empty for AttachMember operation")
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userRef := r.client.Collection(usersCollection).Doc(userID)
		groupRef := r.client.Collection(groupsCollection).Doc(groupID)

		groupExists := true
		groupSnap, err := tx.Get(groupRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("failed to read group '%s': %w", groupID, err)
			}
			groupExists = false
		}

		if err := tx.Update(userRef, []firestore.Update{
			{Path: "groupId", Value: groupID},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			return fmt.Errorf("failed to attach user '%s' to group '%s': %w", userID, groupID, err)
		}

		if groupExists {
			current := firstInt(groupSnap.Data(), "memberCount", "member_count")
			if err := tx.Update(groupRef, []firestore.Update{
				{Path: "memberCount", Value: current + 1},
				{Path: "updatedAt", Value: firestore.ServerTimestamp},
			}); err != nil {
				return fmt.Errorf("failed to increment member count for group '%s': %w", groupID, err)
			}
		}
		return nil
	}, firestore.MaxAttempts(groupTxMaxAttempts))

	if err != nil {
		if status.Code(err) == codes.Aborted {
			return fmt.Errorf("attach member '%s' to group '%s': %w", userID, groupID, ErrConflict)
		}
		return err
	}
	return nil
}
