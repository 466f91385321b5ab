package storage

import "time"

// User is a parent account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	PIN          string    `json:"pin,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a child profile owned by a parent account.
//
// MaturityLevel is informational metadata: it defaults to the label
// derived from Age at creation time, and a parent may override it, but
// content scoring always recomputes its threshold from the raw age.
type Profile struct {
	ID               string    `json:"id"`
	ParentID         string    `json:"parent_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	MaturityLevel    string    `json:"maturity_level"`
	BlockedSites     []string  `json:"blocked_sites"`
	WhitelistedSites []string  `json:"whitelisted_sites"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContentLog records one unsafe verdict. Logs are append-only and are
// removed only when their owning profile is deleted.
type ContentLog struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	ProfileName    string    `json:"profile_name,omitempty"`
	ContentType    string    `json:"content_type"`
	DetectedAt     time.Time `json:"detected_at"`
	IsSafe         bool      `json:"is_safe"`
	Confidence     float64   `json:"confidence"`
	Reasons        []string  `json:"reasons"`
	ContentSnippet string    `json:"content_snippet"`
	URL            string    `json:"url,omitempty"`
}

// ProfileStats counts logged detections per profile.
type ProfileStats struct {
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`
	Detections  int    `json:"detections"`
}
