package toolkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// ScrapeOptions configures browser-based scraping.
type ScrapeOptions struct {
	Headless bool
	Timeout  time.Duration
}

// ScrapePageTool handles the dev_scrape_page MCP tool. It drives a real
// browser, so it also works on pages that render their content with
// JavaScript, unlike dev_http_request.
type ScrapePageTool struct {
	opts ScrapeOptions
}

// NewScrapePageTool creates a ScrapePageTool with the given browser options.
func NewScrapePageTool(opts ScrapeOptions) *ScrapePageTool {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &ScrapePageTool{opts: opts}
}

// Definition returns the MCP tool definition for registration.
func (t *ScrapePageTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_scrape_page",
		mcp.WithDescription(
			"Scrape a web page with a headless browser. Handles JavaScript-rendered "+
				"content. Optionally extract named CSS selectors and take a screenshot. "+
				"Returns JSON.",
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL to scrape"),
		),
		mcp.WithString("selectors",
			mcp.Description("Named CSS selectors, one 'name=selector' per line. Omit to get the page body text."),
		),
		mcp.WithString("wait_for",
			mcp.Description("CSS selector to wait for before extracting"),
		),
		mcp.WithBoolean("screenshot",
			mcp.Description("Take a full-page screenshot (default false)"),
		),
	)
}

type scrapeResult struct {
	URL              string              `json:"url"`
	Timestamp        string              `json:"timestamp"`
	Title            string              `json:"title"`
	ExtractedContent map[string][]string `json:"extracted_content"`
	ScreenshotPath   string              `json:"screenshot_path,omitempty"`
}

// Handle processes the dev_scrape_page tool call.
func (t *ScrapePageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := req.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("'url' is required"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()

	l := launcher.New().Headless(t.opts.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("launching browser: %v", err)), nil
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("connecting to browser: %v", err)), nil
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening page: %v", err)), nil
	}
	if err := page.WaitLoad(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("waiting for page load: %v", err)), nil
	}

	if waitFor := req.GetString("wait_for", ""); waitFor != "" {
		if _, err := page.Element(waitFor); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("waiting for selector %q: %v", waitFor, err)), nil
		}
	}

	info, err := page.Info()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading page info: %v", err)), nil
	}

	result := scrapeResult{
		URL:              url,
		Timestamp:        time.Now().Format(time.RFC3339),
		Title:            info.Title,
		ExtractedContent: make(map[string][]string),
	}

	selectors := parseSelectors(req.GetString("selectors", ""))
	if len(selectors) == 0 {
		body, err := page.Element("body")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("finding body: %v", err)), nil
		}
		text, err := body.Text()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extracting body text: %v", err)), nil
		}
		result.ExtractedContent["body"] = []string{text}
	} else {
		for name, selector := range selectors {
			elements, err := page.Elements(selector)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("finding %q elements: %v", name, err)), nil
			}
			texts := []string{}
			for _, el := range elements {
				text, err := el.Text()
				if err != nil {
					continue
				}
				texts = append(texts, text)
			}
			result.ExtractedContent[name] = texts
		}
	}

	if req.GetBool("screenshot", false) {
		data, err := page.Screenshot(true, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("taking screenshot: %v", err)), nil
		}
		path := filepath.Join(os.TempDir(), fmt.Sprintf("devcrew-screenshot-%s.png", uuid.NewString()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("writing screenshot: %v", err)), nil
		}
		result.ScreenshotPath = path
	}

	return jsonResult(result)
}

// parseSelectors parses "name=selector" lines into a map. Lines without an
// equals sign are skipped.
func parseSelectors(s string) map[string]string {
	selectors := make(map[string]string)
	for _, line := range strings.Split(s, "\n") {
		name, selector, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		selector = strings.TrimSpace(selector)
		if name == "" || selector == "" {
			continue
		}
		selectors[name] = selector
	}
	return selectors
}
