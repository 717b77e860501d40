package model

// FeedItem is a normalized code-hosting event shown in the activity feed.
type FeedItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Repo     string `json:"repo,omitempty"`
	TS       string `json:"ts,omitempty"`
}

// SubmissionItem is a normalized coding-challenge submission.
// TS is interface{} because upstream shapes disagree: the GraphQL and
// mirror endpoints return Unix seconds, the legacy API sometimes a string.
type SubmissionItem struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Slug   string      `json:"slug"`
	Status string      `json:"status"`
	Lang   string      `json:"lang"`
	TS     interface{} `json:"ts"`
}

// FeedResponse is the wire contract shared by both adapters:
// always JSON, items always present, error/debug only on demand.
type FeedResponse struct {
	Items []FeedItem `json:"items"`
}

// SubmissionResponse extends the shared contract with the error and
// debug fields the challenge-submission adapter may carry.
type SubmissionResponse struct {
	Items []SubmissionItem `json:"items"`
	Error string           `json:"error,omitempty"`
	Debug string           `json:"debug,omitempty"`
}

// GitHubEvent is one record from the public events feed. Only the
// fields the kind table interprets are declared.
type GitHubEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
		RefType string `json:"ref_type"`
		Ref     string `json:"ref"`
		Action  string `json:"action"`
		Number  int    `json:"number"`
		PullRequest struct {
			Title string `json:"title"`
		} `json:"pull_request"`
		Issue struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
		} `json:"issue"`
	} `json:"payload"`
	CreatedAt string `json:"created_at"`
}

// GraphQLSubmission is one entry of recentSubmissionList.
type GraphQLSubmission struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	TitleSlug     string      `json:"titleSlug"`
	Lang          string      `json:"lang"`
	StatusDisplay string      `json:"statusDisplay"`
	Timestamp     interface{} `json:"timestamp"`
}

// GraphQLResponse wraps the recent-submissions query result.
type GraphQLResponse struct {
	Data struct {
		RecentSubmissionList []GraphQLSubmission `json:"recentSubmissionList"`
	} `json:"data"`
}

// MirrorSubmission is one entry from the third-party mirror API. The
// mirror has a single stable shape, though deployments disagree on
// whether the status key is statusDisplay or status.
type MirrorSubmission struct {
	Title         string      `json:"title"`
	TitleSlug     string      `json:"titleSlug"`
	StatusDisplay string      `json:"statusDisplay"`
	Status        string      `json:"status"`
	Lang          string      `json:"lang"`
	Timestamp     interface{} `json:"timestamp"`
}

// MirrorResponse is the mirror API envelope.
type MirrorResponse struct {
	Count      int                `json:"count"`
	Submission []MirrorSubmission `json:"submission"`
}
