// Package webfetch retrieves a URL and returns it as text, markdown or raw
// HTML for an LLM to read.
//
// GitHub "blob" page URLs are rewritten to their raw.githubusercontent.com
// equivalent so the caller gets the file rather than the GitHub UI around it.
// Converted output is capped at MaxContent characters.
package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/jpl-au/llmfs/internal/validate"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxContent = 100000

	// maxBody bounds how much of a response is read before conversion.
	maxBody = 10 << 20
)

// ErrRequestFailed is returned for transport errors and non-2xx responses.
var ErrRequestFailed = errors.New("request failed")

// Format selects the shape of the returned content.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Options configures a fetch.
type Options struct {
	URL        string        // http or https URL (required)
	Format     Format        // default FormatText
	Timeout    time.Duration // default DefaultTimeout
	MaxContent int           // default DefaultMaxContent; applies to text and markdown
	Client     *http.Client  // default http.DefaultClient
}

// Result is a fetched and converted page.
type Result struct {
	URL       string `json:"url"`
	Format    Format `json:"format"`
	Status    int    `json:"status"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
}

// Fetch downloads opts.URL and converts it to opts.Format.
func Fetch(ctx context.Context, opts Options) (Result, error) {
	if err := validate.Required("url", opts.URL); err != nil {
		return Result{}, err
	}
	target, err := RawURL(opts.URL)
	if err != nil {
		return Result{}, err
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	switch opts.Format {
	case FormatText, FormatMarkdown, FormatHTML:
	default:
		return Result{}, fmt.Errorf("%w: format must be text, markdown or html, got %q", validate.ErrInvalidArgument, opts.Format)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxContent <= 0 {
		opts.MaxContent = DefaultMaxContent
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrRequestFailed, target, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrRequestFailed, target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: %s: status %s", ErrRequestFailed, target, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: read body: %w", ErrRequestFailed, target, err)
	}

	r := Result{URL: target, Format: opts.Format, Status: resp.StatusCode}
	switch opts.Format {
	case FormatHTML:
		r.Content = string(body)
		return r, nil
	case FormatMarkdown:
		r.Content, err = ToMarkdown(string(body))
	default:
		r.Content, err = ToText(string(body))
	}
	if err != nil {
		return Result{}, fmt.Errorf("convert %s: %w", target, err)
	}
	r.Content, r.Truncated = truncate(r.Content, opts.MaxContent)
	return r, nil
}

// RawURL validates u and rewrites GitHub blob URLs to raw content URLs.
func RawURL(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: not an http(s) URL: %q", validate.ErrInvalidArgument, u)
	}
	if parsed.Host == "github.com" && strings.Contains(parsed.Path, "/blob/") {
		parsed.Host = "raw.githubusercontent.com"
		parsed.Path = strings.Replace(parsed.Path, "/blob/", "/", 1)
		parsed.RawPath = ""
	}
	return parsed.String(), nil
}

// ToMarkdown converts HTML to markdown with ATX headings, "-" bullets and
// fenced code blocks. Scripts, styles and metadata are dropped.
func ToMarkdown(html string) (string, error) {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		HorizontalRule:   "---",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		EmDelimiter:      "*",
	})
	conv.Remove("script", "style", "meta", "link")
	return conv.ConvertString(html)
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

// ToText extracts readable text from HTML. Link targets and images are
// dropped; block elements become line breaks.
func ToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, template, head, img, svg").Remove()

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			name := goquery.NodeName(c)
			switch {
			case name == "#text":
				b.WriteString(c.Text())
			case name == "br":
				b.WriteByte('\n')
			case blockTags[name]:
				b.WriteByte('\n')
				walk(c)
				b.WriteByte('\n')
			case name == "td" || name == "th":
				walk(c)
				b.WriteByte(' ')
			default:
				walk(c)
			}
		})
	}
	walk(doc.Selection)
	return tidy(b.String()), nil
}

// tidy collapses whitespace within lines and drops empty lines.
func tidy(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s, false
	}
	return string(runes[:n]), true
}
