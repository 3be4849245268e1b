package domain

import "time"

// RenderStatus enumerates render lifecycle states.
type RenderStatus string

const (
	RenderStatusQueued    RenderStatus = "QUEUED"
	RenderStatusRunning   RenderStatus = "RUNNING"
	RenderStatusSucceeded RenderStatus = "SUCCEEDED"
	RenderStatusFailed    RenderStatus = "FAILED"
)

// Render is the persisted record of one render request. RequestJSON holds
// the jsoncfg.RenderRequest it was enqueued with.
type Render struct {
	ID          string       `json:"id"`
	ParentID    string       `json:"parent_id,omitempty"`
	Status      RenderStatus `json:"status"`
	Mode        ToolMode     `json:"mode"`
	Vehicle     string       `json:"vehicle"`
	RequestJSON []byte       `json:"-"`
	Prompt      string       `json:"prompt,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RenderAsset is one generated image belonging to a render.
type RenderAsset struct {
	ID         string    `json:"id"`
	RenderID   string    `json:"render_id"`
	Label      string    `json:"label"`
	StorageKey string    `json:"storage_key"`
	URL        string    `json:"url,omitempty"`
	MIME       string    `json:"mime"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Bytes      int64     `json:"bytes"`
	Prompt     string    `json:"prompt,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
