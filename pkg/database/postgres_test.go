package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/community-hub-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "hub", Password: "secret", Name: "community_hub", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5433 user=hub password=secret dbname=community_hub sslmode=disable", dsn)
}
