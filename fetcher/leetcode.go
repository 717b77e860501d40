package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"activity-service/config"
	"activity-service/metrics"
	"activity-service/model"
)

// debugSnippetMax caps raw-body snippets carried in the debug field so a
// blocked-page HTML dump never floods the response.
const debugSnippetMax = 1200

// ErrAllStrategiesFailed is returned when every fetch strategy in the
// chain failed without producing a terminal answer.
var ErrAllStrategiesFailed = errors.New("all submission fetch strategies failed")

// TerminalError stops the strategy chain: the answer is a structured
// empty result with this message (and optional debug snippet) rather
// than a try-the-next-strategy failure.
type TerminalError struct {
	Message string
	Debug   string
}

func (e *TerminalError) Error() string {
	return e.Message
}

// SubmissionStrategy is one way of obtaining recent submissions for a
// user. Strategies are tried in order; an error other than
// *TerminalError falls through to the next one.
type SubmissionStrategy interface {
	Name() string
	Fetch(ctx context.Context, user string, limit int) ([]model.SubmissionItem, error)
}

// LeetCodeFetcher runs the ordered strategy chain: the official GraphQL
// endpoint, then the legacy submissions API, then a third-party mirror.
type LeetCodeFetcher struct {
	strategies []SubmissionStrategy
}

func NewLeetCodeFetcher(cfg *config.Config) *LeetCodeFetcher {
	client := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}
	return &LeetCodeFetcher{
		strategies: []SubmissionStrategy{
			&graphQLStrategy{cfg: cfg, client: client},
			&submissionsAPIStrategy{cfg: cfg, client: client},
			&mirrorStrategy{cfg: cfg, client: client},
		},
	}
}

// FetchSubmissions returns up to limit normalized submissions along with
// the name of the strategy that produced them. A *TerminalError means
// the chain decided on a definitive empty answer; ErrAllStrategiesFailed
// means nothing usable could be fetched.
func (f *LeetCodeFetcher) FetchSubmissions(ctx context.Context, user string, limit int) ([]model.SubmissionItem, string, error) {
	for _, s := range f.strategies {
		items, err := s.Fetch(ctx, user, limit)
		if err != nil {
			var terminal *TerminalError
			if errors.As(err, &terminal) {
				log.Printf("[WARN] LeetCode strategy %s terminal: %s", s.Name(), terminal.Message)
				return nil, "", err
			}
			log.Printf("[WARN] LeetCode strategy %s failed, trying next: %v", s.Name(), err)
			metrics.StrategyFallthroughs.WithLabelValues(s.Name()).Inc()
			continue
		}
		log.Printf("[INFO] LeetCode strategy %s returned %d submissions for user=%s", s.Name(), len(items), user)
		return items, s.Name(), nil
	}
	return nil, "", ErrAllStrategiesFailed
}

// browser-ish headers; some upstreams reject an empty user agent
func setDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; PortfolioBot/1.0; +https://example.com)")
	req.Header.Set("Referer", "https://leetcode.com/")
}

// graphQLStrategy queries recentSubmissionList on the official GraphQL
// endpoint. Public but may be rate-limited or served an HTML block page.
type graphQLStrategy struct {
	cfg    *config.Config
	client *http.Client
}

func (s *graphQLStrategy) Name() string {
	return "graphql"
}

func (s *graphQLStrategy) Fetch(ctx context.Context, user string, limit int) ([]model.SubmissionItem, error) {
	query := map[string]interface{}{
		"query": `query recentSubmissions($username: String!) {
  recentSubmissionList(username: $username) {
    id
    title
    titleSlug
    lang
    statusDisplay
    timestamp
  }
}`,
		"variables": map[string]string{"username": user},
	}

	payload, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.LeetCodeGraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	setDefaultHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, err
	}

	// An HTML login/block page never starts with a JSON object; bail so
	// the chain can try the fallback endpoints.
	text := strings.TrimSpace(string(body))
	if !strings.HasPrefix(text, "{") {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "blocked").Inc()
		return nil, fmt.Errorf("GraphQL returned non-JSON (snippet: %q)", snippet(text, 200))
	}

	var parsed model.GraphQLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, fmt.Errorf("GraphQL decode error: %w", err)
	}

	list := parsed.Data.RecentSubmissionList
	if len(list) == 0 {
		return nil, fmt.Errorf("GraphQL returned no submissions")
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "success").Inc()

	items := []model.SubmissionItem{}
	for i, sub := range list {
		if i >= limit {
			break
		}
		item := model.SubmissionItem{
			ID:     sub.ID,
			Title:  sub.Title,
			Slug:   sub.TitleSlug,
			Status: sub.StatusDisplay,
			Lang:   sub.Lang,
			TS:     sub.Timestamp,
		}
		if item.ID == "" {
			item.ID = synthesizeID(sub.TitleSlug, sub.Timestamp, i)
		}
		if item.Title == "" {
			item.Title = sub.TitleSlug
		}
		items = append(items, item)
	}
	return items, nil
}

// submissionsAPIStrategy hits the older per-user REST resource. Field
// naming has drifted across deployments, so the submission list and the
// per-entry fields are probed by name.
type submissionsAPIStrategy struct {
	cfg    *config.Config
	client *http.Client
}

func (s *submissionsAPIStrategy) Name() string {
	return "submissions_api"
}

func (s *submissionsAPIStrategy) Fetch(ctx context.Context, user string, limit int) ([]model.SubmissionItem, error) {
	apiURL := fmt.Sprintf("%s/%s/?offset=0&limit=%d",
		strings.TrimRight(s.cfg.LeetCodeAPIURL, "/"), url.PathEscape(user), limit)

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	setDefaultHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, err
	}

	// HTML here means a login/Cloudflare/redirect page: the account is
	// effectively unreachable, so answer definitively instead of hammering
	// the mirror too.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "blocked").Inc()
		return nil, &TerminalError{
			Message: "LeetCode returned a non-JSON response (likely blocked or changed)",
			Debug:   snippet(string(raw), debugSnippetMax),
		}
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, fmt.Errorf("submissions API decode error: %w", err)
	}

	submissions := probeSubmissionList(parsed)
	if len(submissions) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "empty").Inc()
		return nil, &TerminalError{
			Message: "No submissions found (LeetCode API shape changed or user has no recent submissions)",
		}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "success").Inc()

	if len(submissions) > limit {
		submissions = submissions[:limit]
	}

	items := []model.SubmissionItem{}
	for i, entry := range submissions {
		items = append(items, mapLooseSubmission(entry, i))
	}
	return items, nil
}

// probeSubmissionList tries the field names the legacy API has used over
// time for the submission list, including one nested under data.
func probeSubmissionList(parsed map[string]interface{}) []map[string]interface{} {
	candidates := []interface{}{
		parsed["submissions"],
		parsed["subs"],
		parsed["recent_submissions"],
		parsed["submission_list"],
	}
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		candidates = append(candidates, data["submissions"])
	}

	for _, candidate := range candidates {
		list, ok := candidate.([]interface{})
		if !ok || len(list) == 0 {
			continue
		}
		entries := []map[string]interface{}{}
		for _, raw := range list {
			if entry, ok := raw.(map[string]interface{}); ok {
				entries = append(entries, entry)
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}
	return nil
}

// mapLooseSubmission normalizes one loosely-shaped legacy entry using
// the historical field-name fallbacks.
func mapLooseSubmission(entry map[string]interface{}, idx int) model.SubmissionItem {
	slug := firstString(entry, "titleSlug", "question__title_slug", "translated_title_slug")
	ts := firstValue(entry, "timestamp", "time", "create_time")

	title := firstString(entry, "title", "titleSlug", "translated_title")
	if title == "" {
		title = "unknown"
	}

	status := firstString(entry, "status_display", "status", "result")
	if status == "" {
		if accepted, _ := entry["accepted"].(bool); accepted {
			status = "Accepted"
		} else if _, hasRuntime := entry["runtime"]; hasRuntime {
			status = "Runtime"
		} else {
			status = "Unknown"
		}
	}

	lang := firstString(entry, "lang", "language", "language_display")
	if lang == "" {
		lang = "—"
	}

	id := firstString(entry, "id", "submission_id")
	if id == "" {
		id = synthesizeID(slug, ts, idx)
	}

	return model.SubmissionItem{
		ID:     id,
		Title:  title,
		Slug:   slug,
		Status: status,
		Lang:   lang,
		TS:     ts,
	}
}

// mirrorStrategy queries a hosted mirror API keyed by username. The
// mirror has a single stable shape, so no field probing is needed.
type mirrorStrategy struct {
	cfg    *config.Config
	client *http.Client
}

func (s *mirrorStrategy) Name() string {
	return "mirror"
}

func (s *mirrorStrategy) Fetch(ctx context.Context, user string, limit int) ([]model.SubmissionItem, error) {
	apiURL := fmt.Sprintf("%s/%s/submission",
		strings.TrimRight(s.cfg.LeetCodeMirrorURL, "/"), url.PathEscape(user))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	setDefaultHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, fmt.Errorf("mirror API HTTP %d", resp.StatusCode)
	}

	var parsed model.MirrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "error").Inc()
		return nil, fmt.Errorf("mirror API decode error: %w", err)
	}

	if len(parsed.Submission) == 0 {
		return nil, fmt.Errorf("mirror API returned no submissions")
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("leetcode", s.Name(), "success").Inc()

	items := []model.SubmissionItem{}
	for i, sub := range parsed.Submission {
		if i >= limit {
			break
		}

		status := sub.StatusDisplay
		if status == "" {
			status = sub.Status
		}
		title := sub.Title
		if title == "" {
			title = sub.TitleSlug
		}
		if title == "" {
			title = "Unknown Problem"
		}
		lang := sub.Lang
		if lang == "" {
			lang = "—"
		}

		items = append(items, model.SubmissionItem{
			ID:     synthesizeID(sub.TitleSlug, sub.Timestamp, i),
			Title:  title,
			Slug:   sub.TitleSlug,
			Status: status,
			Lang:   lang,
			TS:     sub.Timestamp,
		})
	}
	return items, nil
}

// synthesizeID builds a deterministic id from slug and timestamp. The
// positional fallback keeps ids unique within one response when both
// are absent.
func synthesizeID(slug string, ts interface{}, idx int) string {
	t := tsString(ts)
	switch {
	case slug != "" && t != "":
		return slug + "-" + t
	case slug != "":
		return fmt.Sprintf("%s-%d", slug, idx)
	case t != "":
		return fmt.Sprintf("submission-%s-%d", t, idx)
	default:
		return fmt.Sprintf("submission-%d", idx)
	}
}

// tsString renders a timestamp value the way it should appear in an id:
// integral floats without an exponent, strings as-is.
func tsString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func firstString(entry map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := entry[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func firstValue(entry map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if value, ok := entry[key]; ok && value != nil {
			return value
		}
	}
	return nil
}
