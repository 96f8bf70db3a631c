package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		header map[string]string
		status int
	}{
		{name: "NoKeyConfigured", apiKey: "", status: 200},
		{name: "Missing", apiKey: "secret", status: 401},
		{name: "Wrong", apiKey: "secret", header: map[string]string{HeaderName: "nope"}, status: 401},
		{name: "Header", apiKey: "secret", header: map[string]string{HeaderName: "secret"}, status: 200},
		{name: "Bearer", apiKey: "secret", header: map[string]string{"Authorization": "Bearer secret"}, status: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(200) })

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
