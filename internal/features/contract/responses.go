package contract

import (
	"context"
	"time"

	"closetshare/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContractView is the client-facing shape: party ids are substituted with
// usernames.
type ContractView struct {
	ID         primitive.ObjectID `json:"id"`
	Owner      string             `json:"owner"`
	Borrower   string             `json:"borrower"`
	Item       primitive.ObjectID `json:"item"`
	BorrowDate time.Time          `json:"borrowDate"`
	ReturnDate time.Time          `json:"returnDate"`
	Notes      string             `json:"notes"`
	Finalized  bool               `json:"finalized"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func formatContracts(ctx context.Context, users user.UserService, contracts []Contract) ([]ContractView, error) {
	ids := make([]primitive.ObjectID, 0, len(contracts)*2)
	for _, c := range contracts {
		ids = append(ids, c.Owner, c.Borrower)
	}
	names, err := users.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ContractView, len(contracts))
	for i, c := range contracts {
		views[i] = ContractView{
			ID:         c.ID,
			Owner:      names[i*2],
			Borrower:   names[i*2+1],
			Item:       c.Item,
			BorrowDate: c.BorrowDate,
			ReturnDate: c.ReturnDate,
			Notes:      c.Notes,
			Finalized:  c.Finalized,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return views, nil
}

func formatContract(ctx context.Context, users user.UserService, contract *Contract) (*ContractView, error) {
	views, err := formatContracts(ctx, users, []Contract{*contract})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
