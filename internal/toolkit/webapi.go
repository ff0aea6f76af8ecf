package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/net/html"
)

// userAgent identifies devcrew requests to remote services.
const userAgent = "devcrew-bot/1.0"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20 // 1MB

var multiNewlinePattern = regexp.MustCompile(`\n{3,}`)

// HTTPRequestTool handles the dev_http_request MCP tool.
type HTTPRequestTool struct {
	client *http.Client
}

// NewHTTPRequestTool creates an HTTPRequestTool with a default client.
func NewHTTPRequestTool() *HTTPRequestTool {
	return &HTTPRequestTool{client: http.DefaultClient}
}

// Definition returns the MCP tool definition for registration.
func (t *HTTPRequestTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_http_request",
		mcp.WithDescription(
			"Make an HTTP request to an API or web page. JSON responses are decoded, "+
				"HTML responses are reduced to title and text. Returns JSON.",
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Request URL"),
		),
		mcp.WithString("method",
			mcp.Description("HTTP method (default GET)"),
			mcp.Enum("GET", "POST", "PUT", "PATCH", "DELETE", "HEAD"),
		),
		mcp.WithString("headers",
			mcp.Description("Request headers, one 'Name: value' per line"),
		),
		mcp.WithString("body",
			mcp.Description("Request body (sent as-is)"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Request timeout in seconds (default 30)"),
		),
	)
}

type httpResponse struct {
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	StatusCode int               `json:"status_code"`
	Timestamp  string            `json:"timestamp"`
	Headers    map[string]string `json:"headers"`
	Success    bool              `json:"success"`
	JSONData   any               `json:"json_data,omitempty"`
	TextData   string            `json:"text_data,omitempty"`
	PageTitle  string            `json:"page_title,omitempty"`
}

// Handle processes the dev_http_request tool call.
func (t *HTTPRequestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := req.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("'url' is required"), nil
	}
	method := req.GetString("method", "GET")
	timeout := time.Duration(req.GetFloat("timeout_seconds", 30)) * time.Second

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if b := req.GetString("body", ""); b != "" {
		body = strings.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building request: %v", err)), nil
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")
	for name, value := range parseHeaders(req.GetString("headers", "")) {
		httpReq.Header.Set(name, value)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading response: %v", err)), nil
	}

	result := httpResponse{
		URL:        url,
		Method:     method,
		StatusCode: resp.StatusCode,
		Timestamp:  time.Now().Format(time.RFC3339),
		Headers:    make(map[string]string, len(resp.Header)),
		Success:    resp.StatusCode < 400,
	}
	for name := range resp.Header {
		result.Headers[name] = resp.Header.Get(name)
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			result.JSONData = decoded
		} else {
			result.TextData = string(raw)
		}
	case strings.Contains(contentType, "text/html"):
		title, text := extractHTML(raw)
		result.PageTitle = title
		result.TextData = text
	default:
		result.TextData = string(raw)
	}

	return jsonResult(result)
}

// extractHTML reduces an HTML document to its title and visible text.
// Script and style contents are dropped.
func extractHTML(raw []byte) (title, text string) {
	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return "", string(raw)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
				b.WriteString("\n")
			}
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text = multiNewlinePattern.ReplaceAllString(strings.TrimSpace(b.String()), "\n\n")
	return title, text
}
