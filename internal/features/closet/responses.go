package closet

import (
	"context"
	"time"

	"closetshare/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothingItemView is the client-facing shape: ids are substituted with
// usernames.
type ClothingItemView struct {
	ID          primitive.ObjectID `json:"id"`
	Owner       string             `json:"owner"`
	Borrower    string             `json:"borrower,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ImageURL    string             `json:"imageUrl"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// formatItems resolves all owner and borrower usernames with one bulk
// lookup per role.
func formatItems(ctx context.Context, users user.UserService, items []ClothingItem) ([]ClothingItemView, error) {
	owners := make([]primitive.ObjectID, len(items))
	for i, item := range items {
		owners[i] = item.Owner
	}
	ownerNames, err := users.IDsToUsernames(ctx, owners)
	if err != nil {
		return nil, err
	}

	var borrowerIDs []primitive.ObjectID
	for _, item := range items {
		if item.Borrower != nil {
			borrowerIDs = append(borrowerIDs, *item.Borrower)
		}
	}
	borrowerNames, err := users.IDsToUsernames(ctx, borrowerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ClothingItemView, len(items))
	next := 0
	for i, item := range items {
		view := ClothingItemView{
			ID:          item.ID,
			Owner:       ownerNames[i],
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
		if item.Borrower != nil {
			view.Borrower = borrowerNames[next]
			next++
		}
		views[i] = view
	}
	return views, nil
}

func formatItem(ctx context.Context, users user.UserService, item *ClothingItem) (*ClothingItemView, error) {
	views, err := formatItems(ctx, users, []ClothingItem{*item})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
