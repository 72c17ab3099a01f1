package slack

// profileGetResponse is the users.profile.get response body.
type profileGetResponse struct {
	OK      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	Profile *profileResponse `json:"profile,omitempty"`
}

// profileResponse holds the status fields of a profile; any may be absent.
type profileResponse struct {
	StatusText       *string `json:"status_text,omitempty"`
	StatusEmoji      *string `json:"status_emoji,omitempty"`
	StatusExpiration *int64  `json:"status_expiration,omitempty"`
}

// profileSetRequest is the users.profile.set request body.
type profileSetRequest struct {
	Profile profileFields `json:"profile"`
}

type profileFields struct {
	StatusText       string `json:"status_text"`
	StatusEmoji      string `json:"status_emoji"`
	StatusExpiration int64  `json:"status_expiration"`
}

// profileSetResponse is the users.profile.set response body.
type profileSetResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
