package closet

import (
	"context"
	"errors"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// allowedUpdates maps patch keys accepted by Update to their stored field
// names. Owner is structurally protected: it is simply not in the map.
var allowedUpdates = map[string]string{
	"name":        "name",
	"description": "description",
	"borrower":    "borrower",
	"imageUrl":    "image_url",
}

type ClothingItemService interface {
	Create(ctx context.Context, owner primitive.ObjectID, name, description, imageURL string) (*ClothingItem, error)
	Update(ctx context.Context, id primitive.ObjectID, patch map[string]any) error
	Borrow(ctx context.Context, id, borrower primitive.ObjectID) error
	Return(ctx context.Context, id primitive.ObjectID) error
	GetClothingItems(ctx context.Context, owner primitive.ObjectID) ([]ClothingItem, error)
	GetAllClothingItems(ctx context.Context) ([]ClothingItem, error)
	GetClothingItemByID(ctx context.Context, id primitive.ObjectID) (*ClothingItem, error)
	GetBorrowedItems(ctx context.Context, borrower primitive.ObjectID) ([]ClothingItem, error)
	GetBorrowableItems(ctx context.Context, user primitive.ObjectID) ([]ClothingItem, error)
	GetOwner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	IsOwner(ctx context.Context, user, id primitive.ObjectID) error
	IsBorrower(ctx context.Context, user, id primitive.ObjectID) error
	Remove(ctx context.Context, id primitive.ObjectID) error
}

type ClothingItemServiceImpl struct {
	repo   ClothingItemRepository
	logger *zap.Logger
}

func NewClothingItemService(repo ClothingItemRepository, logger *zap.Logger) ClothingItemService {
	return &ClothingItemServiceImpl{repo: repo, logger: logger}
}

func (s *ClothingItemServiceImpl) Create(ctx context.Context, owner primitive.ObjectID, name, description, imageURL string) (*ClothingItem, error) {
	item := &ClothingItem{
		Owner:       owner,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("clothing item created", zap.String("item", item.ID.Hex()))
	return item, nil
}

// Update applies a patch after rejecting any key outside the allowed set.
func (s *ClothingItemServiceImpl) Update(ctx context.Context, id primitive.ObjectID, patch map[string]any) error {
	fields, err := sanitizePatch(patch)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return apperr.BadValues("Nothing to update!")
	}
	return s.repo.Update(ctx, id, fields)
}

// Borrow sets the borrower slot. It fails when the caller already borrows
// the item and when any other user currently holds it.
func (s *ClothingItemServiceImpl) Borrow(ctx context.Context, id, borrower primitive.ObjectID) error {
	item, err := s.GetClothingItemByID(ctx, id)
	if err != nil {
		return err
	}

	if item.Borrower != nil {
		if *item.Borrower == borrower {
			return apperr.NotAllowed("You are already borrowing this item!")
		}
		return apperr.NotAllowed("Another user is already borrowing this item!")
	}

	return s.repo.SetBorrower(ctx, id, borrower)
}

// Return clears the borrower slot. Returning an item nobody is borrowing
// is a no-op success.
func (s *ClothingItemServiceImpl) Return(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.ClearBorrower(ctx, id)
}

func (s *ClothingItemServiceImpl) GetClothingItems(ctx context.Context, owner primitive.ObjectID) ([]ClothingItem, error) {
	return s.repo.FindByOwner(ctx, owner)
}

func (s *ClothingItemServiceImpl) GetAllClothingItems(ctx context.Context) ([]ClothingItem, error) {
	return s.repo.FindAll(ctx)
}

func (s *ClothingItemServiceImpl) GetClothingItemByID(ctx context.Context, id primitive.ObjectID) (*ClothingItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Clothing item %s does not exist!", id.Hex())
		}
		return nil, err
	}
	return item, nil
}

func (s *ClothingItemServiceImpl) GetBorrowedItems(ctx context.Context, borrower primitive.ObjectID) ([]ClothingItem, error) {
	return s.repo.FindByBorrower(ctx, borrower)
}

func (s *ClothingItemServiceImpl) GetBorrowableItems(ctx context.Context, user primitive.ObjectID) ([]ClothingItem, error) {
	return s.repo.FindBorrowable(ctx, user)
}

func (s *ClothingItemServiceImpl) GetOwner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	item, err := s.GetClothingItemByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return item.Owner, nil
}

func (s *ClothingItemServiceImpl) IsOwner(ctx context.Context, user, id primitive.ObjectID) error {
	item, err := s.GetClothingItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Owner != user {
		return apperr.NotAllowed("%s is not the owner of clothing item %s!", user.Hex(), id.Hex())
	}
	return nil
}

func (s *ClothingItemServiceImpl) IsBorrower(ctx context.Context, user, id primitive.ObjectID) error {
	item, err := s.GetClothingItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Borrower == nil || *item.Borrower != user {
		return apperr.NotAllowed("%s is not the borrower of clothing item %s!", user.Hex(), id.Hex())
	}
	return nil
}

func (s *ClothingItemServiceImpl) Remove(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func sanitizePatch(patch map[string]any) (bson.M, error) {
	fields := bson.M{}
	for key, value := range patch {
		field, ok := allowedUpdates[key]
		if !ok {
			return nil, apperr.NotAllowed("Cannot update '%s' field!", key)
		}

		if key == "borrower" {
			hex, ok := value.(string)
			if !ok {
				return nil, apperr.BadValues("Invalid borrower id")
			}
			borrower, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, apperr.BadValues("Invalid borrower id")
			}
			fields[field] = borrower
			continue
		}

		fields[field] = value
	}
	return fields, nil
}
