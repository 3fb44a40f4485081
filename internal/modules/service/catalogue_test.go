package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"go.uber.org/zap"
)

func TestSponsorService_List(t *testing.T) {
	ctx := context.Background()
	r := &MockSponsorRepo{}
	r.On("List", ctx).Return([]repo.Record{{"sponsor_id": int64(1), "name": "Acme"}}, nil)

	got, err := NewSponsorService(r).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repo.Record{{"sponsor_id": int64(1), "name": "Acme"}}, got)
	r.AssertExpectations(t)
}

func TestFeedbackService(t *testing.T) {
	ctx := context.Background()

	t.Run("ids by experience", func(t *testing.T) {
		r := &MockFeedbackRepo{}
		r.On("IDsByExperience", ctx).Return(map[int64][]int64{1: {10, 11}}, nil)

		got, err := NewFeedbackService(r).IDsByExperience(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[int64][]int64{1: {10, 11}}, got)
	})

	t.Run("get maps not found", func(t *testing.T) {
		r := &MockFeedbackRepo{}
		r.On("Get", ctx, int64(4)).Return(nil, repo.ErrNotFound)

		_, err := NewFeedbackService(r).Get(ctx, 4)
		assert.ErrorIs(t, err, ErrFeedbackNotFound)
	})

	t.Run("get passes store errors", func(t *testing.T) {
		r := &MockFeedbackRepo{}
		r.On("Get", ctx, int64(4)).Return(nil, errors.New("timeout"))

		_, err := NewFeedbackService(r).Get(ctx, 4)
		assert.EqualError(t, err, "timeout")
	})
}

func TestTableService(t *testing.T) {
	ctx := context.Background()
	data := map[string]any{"name": "Acme"}

	tests := []struct {
		name    string
		setup   func(*MockTableRepo)
		run     func(TableService) error
		wantErr error
	}{
		{
			name: "insert",
			setup: func(r *MockTableRepo) {
				r.On("Insert", ctx, "sponsor", data).Return(int64(12), nil)
			},
			run: func(s TableService) error {
				id, err := s.Insert(ctx, "sponsor", data)
				assert.Equal(t, int64(12), id)
				return err
			},
		},
		{
			name: "insert unknown table",
			setup: func(r *MockTableRepo) {
				r.On("Insert", ctx, "not_a_table", data).Return(int64(0), repo.ErrUnknownTable)
			},
			run: func(s TableService) error {
				_, err := s.Insert(ctx, "not_a_table", data)
				return err
			},
			wantErr: repo.ErrUnknownTable,
		},
		{
			name: "update",
			setup: func(r *MockTableRepo) {
				r.On("Update", ctx, "sponsor", int64(3), data).Return(nil)
			},
			run: func(s TableService) error { return s.Update(ctx, "sponsor", 3, data) },
		},
		{
			name: "remove key mismatch",
			setup: func(r *MockTableRepo) {
				r.On("Remove", ctx, "sponsor", "experience_id", int64(3)).Return(repo.ErrKeyColumnMismatch)
			},
			run:     func(s TableService) error { return s.Remove(ctx, "sponsor", "experience_id", 3) },
			wantErr: repo.ErrKeyColumnMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &MockTableRepo{}
			tt.setup(r)

			err := tt.run(NewTableService(r, zap.NewNop()))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}
