package models

// Create payloads mirror the nested entity shapes: a channel create may embed
// videos, a video create may embed comments and captions, a comment embeds its
// author. Entity ids are pointers so a missing id can be told apart from an
// empty one.

type CreateChannelRequest struct {
	ID          *string              `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	CreatedTime string               `json:"createdTime"`
	Videos      []CreateVideoRequest `json:"videos"`
}

type CreateVideoRequest struct {
	ID          *string                `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	ReleaseTime string                 `json:"releaseTime"`
	Comments    []CreateCommentRequest `json:"comments"`
	Captions    []CreateCaptionRequest `json:"captions"`
}

type CreateCommentRequest struct {
	ID        *string           `json:"id"`
	Text      string            `json:"text"`
	CreatedOn string            `json:"createdOn"`
	Author    CreateUserRequest `json:"author"`
}

type CreateCaptionRequest struct {
	ID       *string `json:"id"`
	Name     string  `json:"name"`
	Language string  `json:"language"`
}

// CreateUserRequest carries no id: user ids are store-assigned.
type CreateUserRequest struct {
	Name        string `json:"name"`
	UserLink    string `json:"userLink"`
	PictureLink string `json:"pictureLink"`
}

type CreateTokenRequest struct {
	Value string `json:"value"`
}

// Update payloads are partial: nil fields leave the stored value untouched.
// Ids, creation timestamps (createdTime, releaseTime) and owned collections
// are immutable and have no update counterpart here.

type UpdateChannelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateVideoRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateCommentRequest struct {
	Text      *string `json:"text"`
	CreatedOn *string `json:"createdOn"`
}

type UpdateCaptionRequest struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	UserLink    *string `json:"userLink"`
	PictureLink *string `json:"pictureLink"`
}

// Apply merges the non-nil fields of the update payload into the entity.
// The merge is the only mutation path; entities are re-persisted in full
// afterwards (explicit read-modify-write, no persistence-by-mutation).

func (c *Channel) Apply(req *UpdateChannelRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
}

func (v *Video) Apply(req *UpdateVideoRequest) {
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
}

func (c *Comment) Apply(req *UpdateCommentRequest) {
	if req.Text != nil {
		c.Text = *req.Text
	}
	if req.CreatedOn != nil {
		c.CreatedOn = *req.CreatedOn
	}
}

func (c *Caption) Apply(req *UpdateCaptionRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Language != nil {
		c.Language = *req.Language
	}
}

func (u *User) Apply(req *UpdateUserRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.UserLink != nil {
		u.UserLink = *req.UserLink
	}
	if req.PictureLink != nil {
		u.PictureLink = *req.PictureLink
	}
}
