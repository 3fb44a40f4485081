package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

func TestDialector(t *testing.T) {
	t.Run("mysql is the default driver", func(t *testing.T) {
		d, err := dialector(config.DatabaseCfg{DSN: "u:p@tcp(localhost:3306)/db"})
		require.NoError(t, err)
		assert.Equal(t, "mysql", d.Name())
	})

	t.Run("mysql tls appends parameter", func(t *testing.T) {
		d, err := dialector(config.DatabaseCfg{Driver: "mysql", DSN: "u:p@tcp(localhost:3306)/db?parseTime=true", EnableTLS: true})
		require.NoError(t, err)
		assert.Equal(t, "u:p@tcp(localhost:3306)/db?parseTime=true&tls=true", d.(*mysql.Dialector).DSN)
	})

	t.Run("postgres tls rewrites sslmode", func(t *testing.T) {
		d, err := dialector(config.DatabaseCfg{Driver: "postgres", DSN: "host=localhost sslmode=disable", EnableTLS: true})
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
		assert.Equal(t, "host=localhost sslmode=require", d.(*postgres.Dialector).DSN)
	})

	t.Run("postgres tls appends sslmode", func(t *testing.T) {
		d, err := dialector(config.DatabaseCfg{Driver: "postgres", DSN: "host=localhost", EnableTLS: true})
		require.NoError(t, err)
		assert.Equal(t, "host=localhost sslmode=require", d.(*postgres.Dialector).DSN)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := dialector(config.DatabaseCfg{Driver: "oracle"})
		assert.Error(t, err)
	})
}
