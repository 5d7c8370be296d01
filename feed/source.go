package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/heavy-boxes/constant"
)

// HTTPSource fetches a JSON timeline from URL
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// status is the subset of a timeline entry we read
type status struct {
	ID        json.Number `json:"id"`
	IDStr     string      `json:"id_str"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"created_at"`
	User      struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

// UserTimelineURL returns the timeline endpoint of screenName below base
func UserTimelineURL(base, screenName string) string {
	return fmt.Sprintf("%s/statuses/user_timeline/%s.json?count=%d",
		strings.TrimRight(base, "/"), url.PathEscape(screenName), constant.FeedTimelineCount)
}

// PublicTimelineURL returns the public timeline endpoint below base
func PublicTimelineURL(base string) string {
	return fmt.Sprintf("%s/statuses/public_timeline.json?count=%d",
		strings.TrimRight(base, "/"), constant.FeedTimelineCount)
}

// Fetch retrieves and decodes the timeline
func (s *HTTPSource) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.URL, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var statuses []status
	if err := dec.Decode(&statuses); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.URL, err)
	}

	items := make([]Item, 0, len(statuses))
	for _, st := range statuses {
		id := st.IDStr
		if id == "" {
			id = st.ID.String()
		}
		if id == "" {
			continue
		}
		// Unparseable dates stay zero
		created, _ := time.Parse(time.RubyDate, st.CreatedAt)
		items = append(items, Item{
			ID:        id,
			Text:      st.Text,
			Author:    st.User.ScreenName,
			CreatedAt: created,
		})
	}
	return items, nil
}

// FileSource reads items from a YAML document with a top-level "items" list
type FileSource struct {
	Path string
}

type itemFile struct {
	Items []Item `yaml:"items"`
}

// Fetch re-reads the file on every call so edits show up on the next refresh
func (s *FileSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", s.Path, err)
	}
	var f itemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.Path, err)
	}
	return f.Items, nil
}
