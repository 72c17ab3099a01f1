package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ApplyStatus writes the status fields of the token owner's profile. A positive
// expirationMinutes becomes an absolute epoch timestamp; zero sends 0, which the
// API treats as "never expires".
func (c *Client) ApplyStatus(ctx context.Context, token, text, emojiCode string, expirationMinutes int) error {
	body := profileSetRequest{
		Profile: profileFields{
			StatusText:       text,
			StatusEmoji:      emojiCode,
			StatusExpiration: ExpirationTimestamp(c.now(), expirationMinutes),
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return protocolError("encoding request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(profileSetMethod), bytes.NewReader(payload))
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	var resp profileSetResponse
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return apiError(resp.Error)
	}

	return nil
}

// ClearStatus removes the status by writing empty text and emoji with no expiration.
func (c *Client) ClearStatus(ctx context.Context, token string) error {
	return c.ApplyStatus(ctx, token, "", "", 0)
}

// ExpirationTimestamp returns now + minutes*60 in epoch seconds, or 0 when minutes
// is not positive.
func ExpirationTimestamp(now time.Time, minutes int) int64 {
	if minutes <= 0 {
		return 0
	}
	return now.Unix() + int64(minutes)*60
}
