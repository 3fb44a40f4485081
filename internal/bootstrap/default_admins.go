package bootstrap

import (
	"context"
	"strings"

	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func adminRows(emails []string) []model.Admin {
	seen := make(map[string]bool, len(emails))
	rows := make([]model.Admin, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		rows = append(rows, model.Admin{Email: e})
	}
	return rows
}

// EnsureAdminsExist inserts the configured admin emails when the service
// starts. Existing rows are left alone.
func EnsureAdminsExist(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	rows := adminRows(cfg.Auth.Admins)
	if len(rows) == 0 {
		return nil
	}

	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	log.Sugar().Infow("admins seeded", "configured", len(rows), "inserted", res.RowsAffected)
	return nil
}
