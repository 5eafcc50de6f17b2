package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"flockreads-backend-go/internal/models"
)

const goalsCollection = "group_goals"

// firestoreGoalRepository implements the GoalRepository interface using Firestore.
type firestoreGoalRepository struct {
	client *firestore.Client
}

// NewFirestoreGoalRepository creates a new instance of firestoreGoalRepository.
func NewFirestoreGoalRepository(client *firestore.Client) GoalRepository {
	return &firestoreGoalRepository{client: client}
}

// List retrieves every goal document with its daily stats. This is a full
// collection scan; acceptable at single-church volumes.
func (r *firestoreGoalRepository) List(ctx context.Context) ([]*models.GroupGoal, error) {
	iter := r.client.Collection(goalsCollection).Documents(ctx)
	defer iter.Stop()

	var goals []*models.GroupGoal
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate group goals: %w", err)
		}
		goals = append(goals, goalFromDoc(docSnap.Ref.ID, docSnap.Data()))
	}
	return goals, nil
}

// SumTotalCleared returns the store-computed sum of total_cleared_count
// across all goal documents, without scanning them client-side.
func (r *firestoreGoalRepository) SumTotalCleared(ctx context.Context) (int64, error) {
	return aggregateSum(ctx, r.client.Collection(goalsCollection).Query, "total_cleared_count")
}
