package service

import (
	"context"

	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/telemetry"
	"go.uber.org/zap"
)

type TableService interface {
	Insert(ctx context.Context, table string, data map[string]any) (int64, error)
	Update(ctx context.Context, table string, rowID int64, data map[string]any) error
	Remove(ctx context.Context, table, keyColumn string, rowID int64) error
}

type tableService struct {
	r   repo.TableRepo
	log *zap.Logger
}

func NewTableService(r repo.TableRepo, log *zap.Logger) TableService {
	return &tableService{r: r, log: log}
}

func (s *tableService) Insert(ctx context.Context, table string, data map[string]any) (int64, error) {
	id, err := s.r.Insert(ctx, table, data)
	telemetry.RecordMutation("insert", table, err)
	if err != nil {
		return 0, err
	}
	s.log.Info("row inserted", zap.String("table", table), zap.Int64("id", id))
	return id, nil
}

func (s *tableService) Update(ctx context.Context, table string, rowID int64, data map[string]any) error {
	err := s.r.Update(ctx, table, rowID, data)
	telemetry.RecordMutation("update", table, err)
	if err != nil {
		return err
	}
	s.log.Info("row updated", zap.String("table", table), zap.Int64("id", rowID), zap.Int("columns", len(data)))
	return nil
}

func (s *tableService) Remove(ctx context.Context, table, keyColumn string, rowID int64) error {
	err := s.r.Remove(ctx, table, keyColumn, rowID)
	telemetry.RecordMutation("remove", table, err)
	if err != nil {
		return err
	}
	s.log.Info("row removed", zap.String("table", table), zap.Int64("id", rowID))
	return nil
}
