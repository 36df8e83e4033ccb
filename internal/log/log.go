// Package log writes one JSON object per line through the standard logger.
// Entries made while serving a request carry a request block; entries made
// outside one, such as placement warnings, do not.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelAudit Level = "audit"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Fields are the action specific values of an entry.
type Fields map[string]any

type request struct {
	ID     string `json:"id,omitempty"`
	Method string `json:"method"`
	Route  string `json:"route,omitempty"`
	Path   string `json:"path"`
	IP     string `json:"ip,omitempty"`
	Status int    `json:"status,omitempty"`
}

type entry struct {
	Time    string   `json:"ts"`
	Level   Level    `json:"level"`
	Action  string   `json:"action"`
	Err     string   `json:"err,omitempty"`
	Request *request `json:"request,omitempty"`
	Fields  Fields   `json:"fields,omitempty"`
}

func requestOf(c *fiber.Ctx) *request {
	if c == nil {
		return nil
	}
	r := &request{
		Method: c.Method(),
		Path:   c.Path(),
		IP:     c.IP(),
		Status: c.Response().StatusCode(),
	}
	if route := c.Route(); route != nil && route.Path != r.Path {
		r.Route = route.Path
	}
	if id, ok := c.Locals("requestid").(string); ok {
		r.ID = id
	}
	return r
}

func write(level Level, c *fiber.Ctx, action string, err error, fields Fields) {
	e := entry{
		Time:    time.Now().UTC().Format(timeFormat),
		Level:   level,
		Action:  action,
		Request: requestOf(c),
		Fields:  fields,
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, mErr := json.Marshal(e)
	if mErr != nil {
		log.Printf(`{"level":"error","action":"log.encode","err":%q}`, mErr.Error())
		return
	}
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields Fields) { write(LevelInfo, c, action, nil, fields) }

// Audit records a state change made through the admin or order routes.
func Audit(c *fiber.Ctx, action string, fields Fields) { write(LevelAudit, c, action, nil, fields) }

func Warn(c *fiber.Ctx, action string, fields Fields) { write(LevelWarn, c, action, nil, fields) }

// Error logs err with the request it failed; c may be nil.
func Error(c *fiber.Ctx, action string, err error, fields Fields) {
	write(LevelError, c, action, err, fields)
}
