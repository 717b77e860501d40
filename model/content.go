package model

// Link is a labeled external URL on a project or experience entry.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Project is one entry of the project gallery.
type Project struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Range   string   `json:"range,omitempty"`
	Status  string   `json:"status,omitempty"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Links   []Link   `json:"links,omitempty"`
}

// Experience is one entry of the experience timeline.
type Experience struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Range   string   `json:"range"`
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets,omitempty"`
	Links   []Link   `json:"links,omitempty"`
}

// Profile carries the handles and links the site header and the
// activity widget are configured from.
type Profile struct {
	Name         string `json:"name"`
	GitHubUser   string `json:"githubUser"`
	LeetCodeUser string `json:"leetcodeUser"`
	Email        string `json:"email"`
	Links        []Link `json:"links"`
}
