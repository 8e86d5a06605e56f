package controller

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/paulohenriquejustino/payment-gateway/app/types"
)

const healthStatusOK = "OK"

// Route describes one endpoint on the status page.
type Route struct {
	Method      string
	Path        string
	Description string
}

// ServerInfo is resolved once at startup and never changes afterwards.
type ServerInfo struct {
	Address     string
	Port        string
	Environment string
	Routes      []Route
}

type StatusController struct {
	info ServerInfo
	now  func() time.Time
}

func NewStatusController(info ServerInfo) *StatusController {
	return &StatusController{info: info, now: time.Now}
}

func (c *StatusController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{
		Status:      healthStatusOK,
		Timestamp:   c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		IP:          c.info.Address,
		Environment: c.info.Environment,
	})
}

func (c *StatusController) Index(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, c.info); err != nil {
		return err
	}
	return ctx.HTML(http.StatusOK, buf.String())
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Payment gateway</title>
</head>
<body>
  <h1>Payment gateway is running</h1>
  <p>Environment: <strong>{{.Environment}}</strong></p>
  <p>Local: <code>http://localhost:{{.Port}}</code></p>
  <p>Network: <code>http://{{.Address}}:{{.Port}}</code></p>
  <h2>Routes</h2>
  <ul>
  {{- range .Routes}}
    <li><code>{{.Method}} {{.Path}}</code> {{.Description}}</li>
  {{- end}}
  </ul>
</body>
</html>
`))
