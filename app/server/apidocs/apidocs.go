package apidocs

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

type Opts func(*config)

// configures the Doc middlewares
type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
	// Title shown in the browser tab
	Title string
}

// WithTitle 覆盖文档页面标题，默认使用文档的 info.title 和 info.version
func WithTitle(title string) Opts {
	return func(cfg *config) {
		cfg.Title = title
	}
}

func render(cfg *config) (string, error) {
	tmpl, err := template.New("apidoc").Parse(pageTemplate)
	if err != nil {
		return "", err
	}

	buf := bytes.NewBuffer(nil)
	if err = tmpl.Execute(buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Doc serves the documentation page and the JSON spec under basePath,
// and redirects basePath itself to the page.
func Doc(basePath string, doc *openapi3.T, opts ...Opts) (echo.MiddlewareFunc, error) {
	specJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
		Title:   fmt.Sprintf("%s %s", doc.Info.Title, doc.Info.Version),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	uiHTML, err := render(cfg)
	if err != nil {
		return nil, fmt.Errorf("render documentation page: %w", err)
	}

	docPath := path.Join(basePath, "apidocs")
	pages := map[string]echo.HandlerFunc{
		basePath: func(c echo.Context) error {
			return c.Redirect(http.StatusFound, docPath)
		},
		docPath: func(c echo.Context) error {
			return c.HTML(http.StatusOK, uiHTML)
		},
		cfg.SpecURL: func(c echo.Context) error {
			return c.JSONBlob(http.StatusOK, specJSON)
		},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 只拦截读取请求，其余交给路由
			method := c.Request().Method
			if method != http.MethodGet && method != http.MethodHead {
				return next(c)
			}

			if page, ok := pages[c.Request().URL.Path]; ok {
				return page(c)
			}
			return next(c)
		}
	}, nil
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>{{ .Title }}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
