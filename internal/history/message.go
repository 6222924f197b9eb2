// Package history is the conversation side of the chat front-end: messages,
// sessions, their persistence, and the token budget that decides how much of a
// conversation is sent to the model.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles used in stored conversations.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AnonymousUser is the owner recorded when no user is signed in.
const AnonymousUser = "anonymous"

// DefaultPreview is shown for sessions without a generated title.
const DefaultPreview = "New Chat"

// ErrInvalidConversation is returned by ImportJSON for malformed input.
var ErrInvalidConversation = errors.New("invalid conversation")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is a stored conversation.
type Session struct {
	ID        string    `json:"session_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Messages  []Message `json:"messages"`
	Preview   string    `json:"preview,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User identifies the owner of a session. The zero value is anonymous.
type User struct {
	Email string
	Name  string
}

// key returns the storage owner, substituting AnonymousUser for an empty email.
func (u User) key() string {
	if u.Email == "" {
		return AnonymousUser
	}
	return u.Email
}

func (u User) displayName() string {
	if u.Email == "" {
		return AnonymousUser
	}
	return u.Name
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// UserMessageCount counts turns authored by the user.
func UserMessageCount(messages []Message) int {
	n := 0
	for _, m := range messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// Preview returns the first line of the session title, or DefaultPreview.
func Preview(s *Session) string {
	if s == nil {
		return DefaultPreview
	}
	p := strings.TrimSpace(s.Preview)
	if p == "" {
		return DefaultPreview
	}
	return strings.SplitN(p, "\n", 2)[0]
}

// seoul is the clock export file names are stamped with.
var seoul = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// ExportJSON serializes messages as indented JSON and proposes a file name
// stamped with now. Non-ASCII text is written as is.
func ExportJSON(messages []Message, now time.Time) ([]byte, string, error) {
	if messages == nil {
		messages = []Message{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(messages); err != nil {
		return nil, "", fmt.Errorf("encoding conversation: %w", err)
	}
	name := fmt.Sprintf("conversation_%s.json", now.In(seoul).Format("20060102_150405"))
	return bytes.TrimRight(buf.Bytes(), "\n"), name, nil
}

// ImportJSON parses an exported conversation. Every entry must be an object
// carrying string "role" and "content" fields.
func ImportJSON(data []byte) ([]Message, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConversation, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a list", ErrInvalidConversation)
	}

	messages := make([]Message, 0, len(raw))
	for i, entry := range raw {
		roleRaw, okRole := entry["role"]
		contentRaw, okContent := entry["content"]
		if !okRole || !okContent {
			return nil, fmt.Errorf("%w: entry %d lacks role or content", ErrInvalidConversation, i)
		}
		var m Message
		if err := json.Unmarshal(roleRaw, &m.Role); err != nil {
			return nil, fmt.Errorf("%w: entry %d role: %v", ErrInvalidConversation, i, err)
		}
		if err := json.Unmarshal(contentRaw, &m.Content); err != nil {
			return nil, fmt.Errorf("%w: entry %d content: %v", ErrInvalidConversation, i, err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}
