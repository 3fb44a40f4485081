package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tgcs/experience-api/internal/modules/model"
)

func TestAdminRows(t *testing.T) {
	rows := adminRows([]string{" Admin@Example.com", "admin@example.com", "", "ops@example.com"})
	assert.Equal(t, []model.Admin{{Email: "admin@example.com"}, {Email: "ops@example.com"}}, rows)
	assert.Empty(t, adminRows(nil))
}
