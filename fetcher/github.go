package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"activity-service/config"
	"activity-service/metrics"
	"activity-service/model"
)

// GitHubFetcher pulls a user's public event stream and maps recognized
// event kinds into feed items.
type GitHubFetcher struct {
	cfg    *config.Config
	client *http.Client
}

func NewGitHubFetcher(cfg *config.Config) *GitHubFetcher {
	return &GitHubFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// FetchEvents requests the public events feed for user and returns up to
// limit mapped items. The events page is oversized (limit*3, floor 10)
// because unrecognized kinds are filtered out before truncation. A body
// that fails to parse as an event list degrades to an empty feed rather
// than an error; only transport failures surface to the caller.
func (f *GitHubFetcher) FetchEvents(ctx context.Context, user string, limit int) ([]model.FeedItem, error) {
	perPage := limit * 3
	if perPage < 10 {
		perPage = 10
	}

	apiURL := fmt.Sprintf("%s/users/%s/events/public?per_page=%d",
		f.cfg.GitHubAPIURL, url.PathEscape(user), perPage)

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio-activity-feed")
	if f.cfg.GitHubToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.GitHubToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("github", "events", "error").Inc()
		return nil, fmt.Errorf("GitHub events fetch error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("github", "events", "error").Inc()
		return nil, fmt.Errorf("GitHub events read error: %w", err)
	}

	// Rate-limit responses and error payloads are JSON objects, not
	// arrays, so they fail this decode and degrade to an empty feed.
	var events []model.GitHubEvent
	if err := json.Unmarshal(body, &events); err != nil {
		log.Printf("[WARN] GitHub events decode failed (status %d), serving empty feed: %v", resp.StatusCode, err)
		metrics.UpstreamRequestsTotal.WithLabelValues("github", "events", "degraded").Inc()
		return []model.FeedItem{}, nil
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("github", "events", "success").Inc()

	items := []model.FeedItem{}
	for _, e := range events {
		item, ok := mapGitHubEvent(e)
		if !ok {
			continue
		}
		items = append(items, item)
		// Events arrive newest-first, so stopping here keeps recency order.
		if len(items) >= limit {
			break
		}
	}

	log.Printf("[INFO] Mapped %d/%d GitHub events for user=%s", len(items), len(events), user)
	return items, nil
}

// mapGitHubEvent converts one upstream event into a feed item. Events
// without a repository and kinds outside the table are skipped.
func mapGitHubEvent(e model.GitHubEvent) (model.FeedItem, bool) {
	if e.Repo.Name == "" {
		return model.FeedItem{}, false
	}

	item := model.FeedItem{
		ID:   e.ID,
		Repo: e.Repo.Name,
		TS:   e.CreatedAt,
	}

	switch e.Type {
	case "PushEvent":
		msg := "push"
		if n := len(e.Payload.Commits); n > 0 {
			msg = e.Payload.Commits[n-1].Message
		}
		item.Title = "pushed commits"
		item.Subtitle = msg
	case "CreateEvent":
		item.Title = fmt.Sprintf("created %s", e.Payload.RefType)
		item.Subtitle = e.Payload.Ref
	case "PullRequestEvent":
		item.Title = fmt.Sprintf("%s pull request #%d", e.Payload.Action, e.Payload.Number)
		item.Subtitle = e.Payload.PullRequest.Title
	case "IssuesEvent":
		item.Title = fmt.Sprintf("%s issue #%d", e.Payload.Action, e.Payload.Issue.Number)
		item.Subtitle = e.Payload.Issue.Title
	case "ForkEvent":
		item.Title = "forked the repo"
	default:
		return model.FeedItem{}, false
	}

	return item, true
}
