// Package models contains the catalogue entities and request/response shapes.
package models

import "time"

// Channel is the root of the catalogue hierarchy. CreatedTime is kept as the
// string the source platform reported; it is never parsed, only compared and
// filtered as text.
type Channel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CreatedTime string   `json:"createdTime,omitempty"`
	Videos      []*Video `json:"videos"`
}

// Video belongs to exactly one Channel and owns its comments and captions.
type Video struct {
	ID          string     `json:"id"`
	ChannelID   string     `json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ReleaseTime string     `json:"releaseTime,omitempty"`
	Comments    []*Comment `json:"comments"`
	Captions    []*Caption `json:"captions"`
}

// Comment belongs to exactly one Video. Its author is a first-class User row;
// the catalogue keeps at most one comment per user.
type Comment struct {
	ID        string `json:"id"`
	VideoID   string `json:"-"`
	Text      string `json:"text"`
	CreatedOn string `json:"createdOn,omitempty"`
	AuthorID  int64  `json:"-"`
	Author    *User  `json:"author,omitempty"`
}

// Caption belongs to exactly one Video.
type Caption struct {
	ID       string `json:"id"`
	VideoID  string `json:"-"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

// User is created as a side effect of comment creation. The id is assigned by
// the store, never by the client.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UserLink    string `json:"userLink,omitempty"`
	PictureLink string `json:"pictureLink,omitempty"`
}

// Token is an opaque credential checked for existence only. No expiry, scope
// or rotation.
type Token struct {
	Value string `json:"value"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}
