package contract

import (
	"context"
	"errors"
	"time"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	MsgUpdated      = "Contract successfully updated!"
	MsgCannotModify = "Cannot modify a finalized contract!"
	MsgFinalized    = "Contract successfully finalized!"
	MsgDeleted      = "Contract deleted successfully!"
	MsgProposed     = "Contract successfully proposed!"

	dateLayout = time.RFC3339

	fieldBorrowDate = "borrowDate"
	fieldReturnDate = "returnDate"
	fieldNotes      = "notes"
	fieldFinalized  = "finalized"
)

// allowedUpdates maps patch keys accepted by Modify to their stored field
// names. Owner, borrower and item are structurally protected.
var allowedUpdates = map[string]string{
	fieldBorrowDate: "borrow_date",
	fieldReturnDate: "return_date",
	fieldNotes:      "notes",
	fieldFinalized:  "finalized",
}

type ContractService interface {
	Propose(ctx context.Context, owner, borrower, item primitive.ObjectID, borrowDate, returnDate time.Time, notes string) (*Contract, error)
	Modify(ctx context.Context, id primitive.ObjectID, patch map[string]any) (string, error)
	Finalize(ctx context.Context, id primitive.ObjectID) (string, error)
	Remove(ctx context.Context, id primitive.ObjectID) error
	IsInvolved(ctx context.Context, user, id primitive.ObjectID) error
	GetContractByID(ctx context.Context, id primitive.ObjectID) (*Contract, error)
	GetContractByItem(ctx context.Context, item primitive.ObjectID) (*Contract, error)
	GetContractsByOwner(ctx context.Context, owner primitive.ObjectID) ([]Contract, error)
	GetContractsByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]Contract, error)
	GetAllUserContracts(ctx context.Context, user primitive.ObjectID) ([]Contract, error)
	GetAllContracts(ctx context.Context) ([]Contract, error)
}

type ContractServiceImpl struct {
	repo   ContractRepository
	logger *zap.Logger
}

func NewContractService(repo ContractRepository, logger *zap.Logger) ContractService {
	return &ContractServiceImpl{repo: repo, logger: logger}
}

func (s *ContractServiceImpl) Propose(ctx context.Context, owner, borrower, item primitive.ObjectID, borrowDate, returnDate time.Time, notes string) (*Contract, error) {
	contract := &Contract{
		Owner:      owner,
		Borrower:   borrower,
		Item:       item,
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
		Notes:      notes,
		Finalized:  false,
	}
	if err := s.repo.Create(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract proposed", zap.String("contract", contract.ID.Hex()))
	return contract, nil
}

// Modify applies a patch to a proposed contract. Modifying a finalized
// contract is silently refused: the call succeeds but reports that nothing
// can change, and no field is touched.
func (s *ContractServiceImpl) Modify(ctx context.Context, id primitive.ObjectID, patch map[string]any) (string, error) {
	contract, err := s.GetContractByID(ctx, id)
	if err != nil {
		return "", err
	}

	if contract.Finalized {
		return MsgCannotModify, nil
	}

	fields, err := sanitizePatch(patch)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", apperr.BadValues("Nothing to update!")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return "", err
	}
	return MsgUpdated, nil
}

// Finalize flips the one-way finalized flag by delegating to Modify, so
// finalizing an already-finalized contract is a no-op success.
func (s *ContractServiceImpl) Finalize(ctx context.Context, id primitive.ObjectID) (string, error) {
	msg, err := s.Modify(ctx, id, map[string]any{fieldFinalized: true})
	if err != nil {
		return "", err
	}
	if msg == MsgCannotModify {
		return msg, nil
	}
	return MsgFinalized, nil
}

func (s *ContractServiceImpl) Remove(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *ContractServiceImpl) IsInvolved(ctx context.Context, user, id primitive.ObjectID) error {
	contract, err := s.GetContractByID(ctx, id)
	if err != nil {
		return err
	}
	if contract.Owner != user && contract.Borrower != user {
		return apperr.NotAllowed("%s is not involved in contract %s!", user.Hex(), id.Hex())
	}
	return nil
}

func (s *ContractServiceImpl) GetContractByID(ctx context.Context, id primitive.ObjectID) (*Contract, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Contract %s does not exist!", id.Hex())
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractServiceImpl) GetContractByItem(ctx context.Context, item primitive.ObjectID) (*Contract, error) {
	contract, err := s.repo.FindByItem(ctx, item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("No contract exists for item %s!", item.Hex())
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractServiceImpl) GetContractsByOwner(ctx context.Context, owner primitive.ObjectID) ([]Contract, error) {
	return s.repo.FindByOwner(ctx, owner)
}

func (s *ContractServiceImpl) GetContractsByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]Contract, error) {
	return s.repo.FindByBorrower(ctx, borrower)
}

func (s *ContractServiceImpl) GetAllUserContracts(ctx context.Context, user primitive.ObjectID) ([]Contract, error) {
	return s.repo.FindByUser(ctx, user)
}

func (s *ContractServiceImpl) GetAllContracts(ctx context.Context) ([]Contract, error) {
	return s.repo.FindAll(ctx)
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperr.BadValues("Invalid date '%s'", raw)
	}
	return t, nil
}

func sanitizePatch(patch map[string]any) (bson.M, error) {
	fields := bson.M{}
	for key, value := range patch {
		field, ok := allowedUpdates[key]
		if !ok {
			return nil, apperr.NotAllowed("Cannot update '%s' field!", key)
		}

		switch key {
		case fieldBorrowDate, fieldReturnDate:
			raw, ok := value.(string)
			if !ok {
				if t, isTime := value.(time.Time); isTime {
					fields[field] = t
					continue
				}
				return nil, apperr.BadValues("Invalid date for '%s'", key)
			}
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				return nil, apperr.BadValues("Invalid date for '%s'", key)
			}
			fields[field] = t
		case fieldFinalized:
			flag, ok := value.(bool)
			if !ok {
				return nil, apperr.BadValues("Invalid value for 'finalized'")
			}
			fields[field] = flag
		default:
			fields[field] = value
		}
	}
	return fields, nil
}
