package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	t.Cleanup(func() {
		stdlog.SetOutput(os.Stderr)
		stdlog.SetFlags(flags)
	})
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &got))
	return got
}

func TestErrorWithoutContext(t *testing.T) {
	buf := captureLog(t)

	Error(nil, "order.place.fail", errors.New("boom"), Fields{"customer_id": 7})

	got := lastEntry(t, buf)
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "order.place.fail", got["action"])
	assert.Equal(t, "boom", got["err"])
	assert.Equal(t, float64(7), got["fields"].(map[string]any)["customer_id"])
	assert.NotContains(t, got, "request")
}

func TestAuditCarriesRequest(t *testing.T) {
	buf := captureLog(t)

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-1" }}))
	app.Delete("/api/admin/orders/:orderId", func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNoContent)
		Audit(c, "admin.orders.delete", Fields{"order_id": c.Params("orderId")})
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/orders/5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	got := lastEntry(t, buf)
	assert.Equal(t, "audit", got["level"])
	assert.Equal(t, "5", got["fields"].(map[string]any)["order_id"])

	req, ok := got["request"].(map[string]any)
	require.True(t, ok, "audit entry has a request block: %v", got)
	assert.Equal(t, "req-1", req["id"])
	assert.Equal(t, "DELETE", req["method"])
	assert.Equal(t, "/api/admin/orders/:orderId", req["route"])
	assert.Equal(t, "/api/admin/orders/5", req["path"])
	assert.Equal(t, float64(fiber.StatusNoContent), req["status"])
}
