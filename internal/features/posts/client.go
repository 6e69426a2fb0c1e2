package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
	apperrors "github.com/lucas24aguirre-lang/comuna-manantial/pkg/errors"
)

const (
	listQuery = `*[_type == "post"] | order(publishedAt desc) { _id, title, "slug": slug.current, "author": author->name, summary, "body": pt::text(body), "imageRef": mainImage.asset._ref, publishedAt }`
	slugQuery = `*[_type == "post" && slug.current == $slug][0] { _id, title, "slug": slug.current, "author": author->name, summary, "body": pt::text(body), "imageRef": mainImage.asset._ref, publishedAt }`
)

// imageRefPattern matches asset references like
// "image-a1b2c3-1200x800-jpg".
var imageRefPattern = regexp.MustCompile(`^image-([a-zA-Z0-9]+)-(\d+x\d+)-(\w+)$`)

// Rendered image dimensions for the list and detail pages.
const (
	listImageWidth    = 600
	listImageHeight   = 400
	detailImageWidth  = 800
	detailImageHeight = 400
)

// Client reads published posts from the Sanity content API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
	dataset    string
	token      string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/%s/data/query/%s",
			cfg.SanityProjectID, cfg.SanityAPIVersion, cfg.SanityDataset),
		projectID: cfg.SanityProjectID,
		dataset:   cfg.SanityDataset,
		token:     cfg.SanityToken,
	}
}

type rawPost struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Author      string     `json:"author"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	ImageRef    string     `json:"imageRef"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// List returns all published posts, newest first.
func (c *Client) List(ctx context.Context) ([]Post, error) {
	var raw []rawPost
	if err := c.query(ctx, listQuery, nil, &raw); err != nil {
		return nil, err
	}

	out := make([]Post, 0, len(raw))
	for i := range raw {
		out = append(out, c.toPost(&raw[i], listImageWidth, listImageHeight))
	}
	return out, nil
}

// GetBySlug returns a single post, or ErrNotFound if no post matches.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var raw *rawPost
	params := map[string]string{"slug": slug}
	if err := c.query(ctx, slugQuery, params, &raw); err != nil {
		return nil, err
	}
	if raw == nil || raw.ID == "" {
		return nil, apperrors.ErrNotFound
	}

	post := c.toPost(raw, detailImageWidth, detailImageHeight)
	return &post, nil
}

func (c *Client) toPost(raw *rawPost, width, height int) Post {
	return Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Slug:        raw.Slug,
		Author:      raw.Author,
		Summary:     raw.Summary,
		Body:        raw.Body,
		ImageURL:    c.ImageURL(raw.ImageRef, width, height),
		PublishedAt: raw.PublishedAt,
	}
}

// ImageURL converts an asset reference into a CDN URL cropped to the target
// dimensions. Non-positive dimensions yield the intrinsic size; unparseable
// references yield an empty string.
func (c *Client) ImageURL(ref string, width, height int) string {
	m := imageRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return ""
	}

	base := fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		c.projectID, c.dataset, m[1], m[2], m[3])
	if width <= 0 || height <= 0 {
		return base
	}
	return fmt.Sprintf("%s?w=%d&h=%d&fit=crop", base, width, height)
}

func (c *Client) query(ctx context.Context, groq string, params map[string]string, result interface{}) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content API returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode content API response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	return json.Unmarshal(envelope.Result, result)
}
