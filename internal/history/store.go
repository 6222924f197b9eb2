package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DefaultRecentLimit bounds Recent when no limit is given.
const DefaultRecentLimit = 30

// ErrSessionNotFound is returned when a session does not exist for the user.
var ErrSessionNotFound = errors.New("session not found")

const keyPrefixConv = "conv:"

// Store persists conversations per user.
type Store interface {
	Create(ctx context.Context, user User) (*Session, error)
	Append(ctx context.Context, user User, sessionID string, messages ...Message) (*Session, error)
	Get(ctx context.Context, user User, sessionID string) (*Session, error)
	SetPreview(ctx context.Context, user User, sessionID, preview string) error
	Recent(ctx context.Context, user User, limit int) ([]*Session, error)
}

// BadgerStore is a Store backed by BadgerDB.
//
// Key Schema:
//
//	conv:{owner}:{sessionID} → JSON(Session)
//
// Safe for concurrent use; BadgerDB handles its own concurrency control.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time
}

// OpenBadger opens (or creates) a BadgerDB directory with badger's own
// logging silenced. An empty path opens an in-memory database.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wraps an opened BadgerDB. The caller owns db and closes it.
func NewBadgerStore(db *badger.DB, logger *slog.Logger) (*BadgerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("badger db must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	return &BadgerStore{db: db, logger: logger, now: time.Now}, nil
}

func sessionKey(user User, sessionID string) []byte {
	return []byte(keyPrefixConv + user.key() + ":" + sessionID)
}

func userPrefix(user User) []byte {
	return []byte(keyPrefixConv + user.key() + ":")
}

// Create stores an empty session under a new id.
func (s *BadgerStore) Create(ctx context.Context, user User) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        NewSessionID(),
		UserEmail: user.key(),
		UserName:  user.displayName(),
		Messages:  []Message{},
		UpdatedAt: s.now().UTC(),
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return putSession(txn, user, sess)
	}); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.logger.Info("session created",
		slog.String("session_id", sess.ID),
		slog.String("user", sess.UserName),
	)
	return sess, nil
}

// Append adds messages to a session, creating it when it does not exist yet.
func (s *BadgerStore) Append(ctx context.Context, user User, sessionID string, messages ...Message) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session id must not be empty")
	}

	var sess *Session
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getSession(txn, user, sessionID)
		switch {
		case errors.Is(err, ErrSessionNotFound):
			existing = &Session{
				ID:        sessionID,
				UserEmail: user.key(),
				UserName:  user.displayName(),
			}
		case err != nil:
			return err
		}
		existing.Messages = append(existing.Messages, messages...)
		existing.UpdatedAt = s.now().UTC()
		sess = existing
		return putSession(txn, user, existing)
	})
	if err != nil {
		return nil, fmt.Errorf("appending to session %s: %w", sessionID, err)
	}

	s.logger.Debug("messages appended",
		slog.String("session_id", sessionID),
		slog.String("user", sess.UserName),
		slog.Int("appended", len(messages)),
		slog.Int("total", len(sess.Messages)),
	)
	return sess, nil
}

// Get loads one session.
func (s *BadgerStore) Get(ctx context.Context, user User, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var sess *Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		sess, err = getSession(txn, user, sessionID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	return sess, nil
}

// SetPreview stores the session title without touching UpdatedAt.
func (s *BadgerStore) SetPreview(ctx context.Context, user User, sessionID, preview string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		sess, err := getSession(txn, user, sessionID)
		if err != nil {
			return err
		}
		sess.Preview = preview
		return putSession(txn, user, sess)
	})
	if err != nil {
		return fmt.Errorf("setting preview for %s: %w", sessionID, err)
	}
	return nil
}

// Recent returns the user's sessions, most recently updated first.
// Anonymous users have no listing.
func (s *BadgerStore) Recent(ctx context.Context, user User, limit int) ([]*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if user.Email == "" {
		return []*Session{}, nil
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sessions := make([]*Session, 0)
	prefix := userPrefix(user)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var sess Session
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &sess)
			}); err != nil {
				s.logger.Warn("skipping corrupt session",
					slog.String("key", string(item.Key())),
					slog.Any("error", err),
				)
				continue
			}
			sessions = append(sessions, &sess)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func getSession(txn *badger.Txn, user User, sessionID string) (*Session, error) {
	item, err := txn.Get(sessionKey(user, sessionID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &sess)
	}); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}

func putSession(txn *badger.Txn, user User, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	return txn.Set(sessionKey(user, sess.ID), data)
}
