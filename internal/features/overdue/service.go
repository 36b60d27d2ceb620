package overdue

import (
	"context"
	"fmt"
	"time"

	"closetshare/internal/config"
	"closetshare/internal/features/closet"
	"closetshare/internal/features/contract"
	"closetshare/internal/features/notification"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// OverdueService periodically scans finalized contracts whose return date
// has passed while the item is still out, and nags both parties.
type OverdueService interface {
	Sweep(ctx context.Context) (int, error)
}

type OverdueServiceImpl struct {
	contractRepo        contract.ContractRepository
	closetRepo          closet.ClothingItemRepository
	notificationService notification.NotificationService
	logger              *zap.Logger

	scheduler *cron.Cron
}

func NewOverdueService(
	lc fx.Lifecycle,
	cfg *config.Config,
	contractRepo contract.ContractRepository,
	closetRepo closet.ClothingItemRepository,
	notificationService notification.NotificationService,
	logger *zap.Logger,
) (OverdueService, error) {
	s := &OverdueServiceImpl{
		contractRepo:        contractRepo,
		closetRepo:          closetRepo,
		notificationService: notificationService,
		logger:              logger,
		scheduler:           cron.New(),
	}

	if _, err := s.scheduler.AddFunc(cfg.SweepSchedule, s.runSweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.SweepSchedule, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.scheduler.Start()
			logger.Info("overdue sweep scheduled", zap.String("schedule", cfg.SweepSchedule))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := s.scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})

	return s, nil
}

func (s *OverdueServiceImpl) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("overdue sweep complete", zap.Int("overdue", count))
	}
}

// Sweep returns how many overdue contracts were found. A contract counts
// as overdue only while the item is still held by the contract's borrower;
// once the item comes back the sweep goes quiet.
func (s *OverdueServiceImpl) Sweep(ctx context.Context) (int, error) {
	contracts, err := s.contractRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	overdue := 0
	for _, c := range contracts {
		item, err := s.closetRepo.FindByID(ctx, c.Item)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				s.logger.Warn("overdue sweep: failed to load item",
					zap.String("itemId", c.Item.Hex()),
					zap.Error(err))
			}
			continue
		}
		if item.Borrower == nil || *item.Borrower != c.Borrower {
			continue
		}

		overdue++
		message := fmt.Sprintf("The lending contract for item %s passed its return date (%s).",
			item.Name, c.ReturnDate.Format("2006-01-02"))

		if err := s.notificationService.Notify(ctx, c.Owner,
			"Overdue contract", message, notification.NotificationTypeOverdue, ""); err != nil {
			s.logger.Warn("overdue sweep: failed to notify owner", zap.Error(err))
		}
		if err := s.notificationService.Notify(ctx, c.Borrower,
			"Overdue contract", message, notification.NotificationTypeOverdue, ""); err != nil {
			s.logger.Warn("overdue sweep: failed to notify borrower", zap.Error(err))
		}
	}

	return overdue, nil
}
