package mariadb

import (
	"testing"

	"github.com/c14220110/poliklinik-analytics/config"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser: "root", DBPassword: "secret", DBHost: "mariadb", DBPort: "3306",
		DBName: "kbmdocv2", DBTimezone: "Africa/Algiers",
	}
	assert.Equal(t, "root:secret@tcp(mariadb:3306)/kbmdocv2?parseTime=true&loc=Africa%2FAlgiers", DSN(cfg))
}
