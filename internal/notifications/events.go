package notifications

import "encoding/json"

// Event types sent to websocket subscribers.
const (
	EventPostPublished  = "post_published"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventLikeToggled    = "like_toggled"
	EventPostLiked      = "post_liked"
	EventCommentAdded   = "comment_added"
	EventCommentDeleted = "comment_deleted"
	EventCommentOnPost  = "comment_on_post"
)

// Event is the JSON envelope of every message written to a subscriber.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode renders the event as a JSON string ready to publish.
func (e Event) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
