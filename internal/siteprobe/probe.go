package siteprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/html"

	"leadbot-backend/internal/shared/telemetry"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	fallbackTitle    = "Site web"
	maxBodyBytes     = 2 << 20
)

const (
	msgURLRequired = "URL requise"
	msgUnreachable = "Impossible de se connecter au site web"
	msgTimeout     = "Délai d'attente dépassé (site trop lent)"
	msgGeneric     = "Erreur lors de la validation de l'URL"
)

// Metadata holds the meta tags the preview cares about.
type Metadata struct {
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
	HasMetadata   bool   `json:"hasMetadata"`
}

// Result is the outcome of one probe. Error is set only when Valid is false.
type Result struct {
	Valid          bool      `json:"valid"`
	Title          string    `json:"title,omitempty"`
	URL            string    `json:"url,omitempty"`
	ResponseTimeMs int64     `json:"responseTimeMs,omitempty"`
	IsSecure       bool      `json:"isSecure,omitempty"`
	StatusCode     int       `json:"statusCode,omitempty"`
	ContentType    string    `json:"contentType,omitempty"`
	Metadata       *Metadata `json:"metadata,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// ErrBlockedAddress is returned when a probe resolves to a non-public address.
var ErrBlockedAddress = errors.New("address not allowed")

// Prober fetches a website and extracts its title and meta tags.
// A nil Client uses PublicClient.
type Prober struct {
	Client    *http.Client
	UserAgent string
}

// New returns a Prober with the default timeout and User-Agent that only
// dials public addresses.
func New() *Prober {
	return &Prober{
		Client:    PublicClient(DefaultTimeout),
		UserAgent: DefaultUserAgent,
	}
}

// PublicClient returns an HTTP client that refuses loopback, private,
// link-local and unspecified addresses. The check runs after DNS resolution
// on every dial, redirects included. Proxies are disabled so the check sees
// the real target.
func PublicClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
		Control:   publicOnly,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: timeout, Transport: transport}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ip)
	}
	return nil
}

func isPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case !ip.IsValid(),
		ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsMulticast(),
		ip.IsUnspecified():
		return false
	}
	return true
}

// Probe issues a GET to rawURL. Failures are reported in the Result, never as errors.
func (p *Prober) Probe(ctx context.Context, rawURL string) Result {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return invalid(msgURLRequired)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(msgGeneric)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return invalid(msgGeneric)
	}
	req.Header.Set("User-Agent", p.userAgent())

	start := time.Now()
	resp, err := p.client().Do(req)
	elapsed := time.Since(start)
	if err != nil {
		telemetry.Warn("siteprobe.request_failed", map[string]any{
			"url":     rawURL,
			"blocked": errors.Is(err, ErrBlockedAddress),
			"error":   err,
		})
		if isTimeout(err) {
			return invalid(msgTimeout)
		}
		return invalid(msgUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return invalid(fmt.Sprintf("Site non accessible (Code: %d)", resp.StatusCode))
	}

	title, meta := extract(io.LimitReader(resp.Body, maxBodyBytes))
	return Result{
		Valid:          true,
		Title:          title,
		URL:            rawURL,
		ResponseTimeMs: elapsed.Milliseconds(),
		IsSecure:       strings.HasPrefix(rawURL, "https://"),
		StatusCode:     resp.StatusCode,
		ContentType:    resp.Header.Get("Content-Type"),
		Metadata:       &meta,
	}
}

func (p *Prober) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return PublicClient(DefaultTimeout)
}

func (p *Prober) userAgent() string {
	if p.UserAgent != "" {
		return p.UserAgent
	}
	return DefaultUserAgent
}

func invalid(msg string) Result {
	return Result{Valid: false, Error: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// extract walks the token stream once, picking the first <title> and the known meta tags.
func extract(r io.Reader) (string, Metadata) {
	var title string
	var meta Metadata
	inTitle := false

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return finish(title, meta)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "title":
				inTitle = title == ""
			case "meta":
				applyMeta(&meta, tok.Attr)
			case "body":
				if title != "" {
					return finish(title, meta)
				}
			}
		case html.TextToken:
			if inTitle {
				title = strings.TrimSpace(string(z.Text()))
				inTitle = false
			}
		case html.EndTagToken:
			if inTitle {
				inTitle = false
			}
		}
	}
}

func finish(title string, meta Metadata) (string, Metadata) {
	if title == "" {
		title = fallbackTitle
	}
	meta.HasMetadata = meta.Description != "" || meta.Keywords != ""
	return title, meta
}

func applyMeta(meta *Metadata, attrs []html.Attribute) {
	var key, content string
	hasContent := false
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "name", "property":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = strings.TrimSpace(a.Val)
			hasContent = true
		}
	}
	if !hasContent {
		return
	}
	switch key {
	case "description":
		setOnce(&meta.Description, content)
	case "keywords":
		setOnce(&meta.Keywords, content)
	case "og:title":
		setOnce(&meta.OGTitle, content)
	case "og:description":
		setOnce(&meta.OGDescription, content)
	}
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
