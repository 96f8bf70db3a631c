package server_test

import (
	"testing"

	"estate-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"Development", server.EnvDevelopment, true},
		{"Staging", server.EnvStaging, true},
		{"Production", server.EnvProduction, true},
		{"Invalid", "qa", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Environment: tt.env}
			assert.Equal(t, tt.want, c.IsValidEnvironment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, server.Config{Environment: "production"}.IsProduction())
	assert.False(t, server.Config{Environment: "development"}.IsProduction())
	assert.False(t, server.Config{}.IsProduction())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 256*1024*1024, server.Config{}.BodyLimit())
	assert.Equal(t, 10*1024*1024, server.Config{BodyLimitMB: 10}.BodyLimit())
}
