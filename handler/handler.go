package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"activity-service/config"
	"activity-service/fetcher"
	"activity-service/metrics"
	"activity-service/model"

	"github.com/gin-gonic/gin"
)

// Handler bundles the configured upstream fetchers behind the HTTP API.
type Handler struct {
	cfg      *config.Config
	github   *fetcher.GitHubFetcher
	leetcode *fetcher.LeetCodeFetcher
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		cfg:      cfg,
		github:   fetcher.NewGitHubFetcher(cfg),
		leetcode: fetcher.NewLeetCodeFetcher(cfg),
	}
}

// setNoCache marks a response non-cacheable for browsers, CDNs and
// proxies alike. Every adapter response carries this exact header set.
func setNoCache(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// parseLimit reads the limit query param and clamps it into [1, MaxLimit].
func (h *Handler) parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultLimit)))
	if err != nil {
		limit = h.cfg.DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > h.cfg.MaxLimit {
		limit = h.cfg.MaxLimit
	}
	return limit
}

// GetGitHubActivity serves GET /api/activity/github?user=<handle>&limit=<n>.
// Responds 400 only when user is missing; any upstream failure degrades
// to 200 with an empty items array so the widget never sees an error page.
func (h *Handler) GetGitHubActivity(c *gin.Context) {
	setNoCache(c)

	user := strings.TrimSpace(c.Query("user"))
	limit := h.parseLimit(c)

	if user == "" {
		log.Printf("[WARN] GitHub activity called without user param")
		c.JSON(http.StatusBadRequest, model.FeedResponse{Items: []model.FeedItem{}})
		return
	}

	log.Printf("[INFO] GetGitHubActivity called with user=%s, limit=%d", user, limit)

	items, err := h.github.FetchEvents(c.Request.Context(), user, limit)
	if err != nil {
		log.Printf("[ERROR] GitHub fetch failed for user=%s: %v", user, err)
		c.JSON(http.StatusOK, model.FeedResponse{Items: []model.FeedItem{}})
		return
	}

	metrics.ActivityItemsServed.WithLabelValues("github", "events").Add(float64(len(items)))
	c.JSON(http.StatusOK, model.FeedResponse{Items: items})
}

// GetLeetCodeActivity serves GET /api/activity/leetcode?user=<handle>&limit=<n>.
// Failure is always communicated via the error field with status 200;
// the only 400 is the missing user param.
func (h *Handler) GetLeetCodeActivity(c *gin.Context) {
	setNoCache(c)

	user := strings.TrimSpace(c.Query("user"))
	limit := h.parseLimit(c)

	if user == "" {
		log.Printf("[WARN] LeetCode activity called without user param")
		c.JSON(http.StatusBadRequest, model.SubmissionResponse{Items: []model.SubmissionItem{}})
		return
	}

	log.Printf("[INFO] GetLeetCodeActivity called with user=%s, limit=%d", user, limit)

	items, strategy, err := h.leetcode.FetchSubmissions(c.Request.Context(), user, limit)
	if err != nil {
		var terminal *fetcher.TerminalError
		if errors.As(err, &terminal) {
			c.JSON(http.StatusOK, model.SubmissionResponse{
				Items: []model.SubmissionItem{},
				Error: terminal.Message,
				Debug: terminal.Debug,
			})
			return
		}
		log.Printf("[ERROR] LeetCode fetch failed for user=%s: %v", user, err)
		c.JSON(http.StatusOK, model.SubmissionResponse{
			Items: []model.SubmissionItem{},
			Error: "Unable to fetch LeetCode submissions. The site may be blocking scraping or the API changed. Check server logs for details.",
		})
		return
	}

	metrics.ActivityItemsServed.WithLabelValues("leetcode", strategy).Add(float64(len(items)))
	c.JSON(http.StatusOK, model.SubmissionResponse{Items: items, Debug: strategy})
}
