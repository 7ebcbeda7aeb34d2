package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionParams_ConnString(t *testing.T) {
	params := ConnectionParams{
		Host:     "db",
		Port:     5433,
		User:     "rp",
		Password: "pw",
		DBName:   "reportportal",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=rp password=pw dbname=reportportal sslmode=disable", params.ConnString())
}
