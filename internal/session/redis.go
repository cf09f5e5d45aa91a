package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"assembl/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one JSON document per session in Redis. Sessions never
// expire; they are removed on commit or cancel.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store writing keys under prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(key Key) string {
	return fmt.Sprintf("%s:%d:%d", s.prefix, key.ChatID, key.UserID)
}

// Get loads the session stored under key
func (s *RedisStore) Get(ctx context.Context, key Key) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess, err := decodeSession(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return sess, nil
}

// Save stores sess under key
func (s *RedisStore) Save(ctx context.Context, key Key, sess *domain.Session) error {
	data, err := encodeSession(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the session stored under key
func (s *RedisStore) Clear(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

type sessionRecord struct {
	State       domain.UserState `json:"state"`
	Canceled    bool             `json:"canceled,omitempty"`
	Category    string           `json:"category,omitempty"`
	CurrentPage int              `json:"current_page,omitempty"`
	Flow        *flowRecord      `json:"flow,omitempty"`
}

// flowRecord flattens every flow variant; Kind selects the variant
type flowRecord struct {
	Kind                   domain.Command `json:"kind"`
	PhotoID                string         `json:"photo_id"`
	Category               string         `json:"category,omitempty"`
	Description            string         `json:"description,omitempty"`
	DescriptionTranslit    string         `json:"description_translit,omitempty"`
	NewPhotoID             string         `json:"new_photo_id,omitempty"`
	NewDescription         string         `json:"new_description,omitempty"`
	NewDescriptionTranslit string         `json:"new_description_translit,omitempty"`
}

func encodeSession(sess *domain.Session) ([]byte, error) {
	if sess == nil {
		sess = domain.NewSession()
	}
	rec := sessionRecord{
		State:       sess.State,
		Canceled:    sess.Canceled,
		Category:    sess.Category,
		CurrentPage: sess.CurrentPage,
	}

	switch f := sess.Flow.(type) {
	case nil:
	case *domain.AddCapture:
		rec.Flow = &flowRecord{
			Kind:                f.Command(),
			PhotoID:             f.PhotoID,
			Category:            f.Category,
			Description:         f.Description,
			DescriptionTranslit: f.DescriptionTranslit,
		}
	case *domain.ReplaceCapture:
		rec.Flow = &flowRecord{
			Kind:       f.Command(),
			PhotoID:    f.PhotoID,
			Category:   f.Category,
			NewPhotoID: f.NewPhotoID,
		}
	case *domain.DeleteConfirm:
		rec.Flow = &flowRecord{
			Kind:    f.Command(),
			PhotoID: f.PhotoID,
		}
	case *domain.EditDescriptionCapture:
		rec.Flow = &flowRecord{
			Kind:                   f.Command(),
			PhotoID:                f.PhotoID,
			NewDescription:         f.NewDescription,
			NewDescriptionTranslit: f.NewDescriptionTranslit,
		}
	default:
		return nil, fmt.Errorf("unsupported flow %T", f)
	}

	return json.Marshal(rec)
}

func decodeSession(data []byte) (*domain.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	sess := &domain.Session{
		State:       rec.State,
		Canceled:    rec.Canceled,
		Category:    rec.Category,
		CurrentPage: rec.CurrentPage,
	}
	if sess.State == "" {
		sess.State = domain.StateIdle
	}
	if rec.Flow == nil {
		return sess, nil
	}

	f := rec.Flow
	switch f.Kind {
	case domain.CommandAdd:
		sess.Flow = &domain.AddCapture{
			PhotoID:             f.PhotoID,
			Category:            f.Category,
			Description:         f.Description,
			DescriptionTranslit: f.DescriptionTranslit,
		}
	case domain.CommandReplace:
		sess.Flow = &domain.ReplaceCapture{
			PhotoID:    f.PhotoID,
			Category:   f.Category,
			NewPhotoID: f.NewPhotoID,
		}
	case domain.CommandDelete:
		sess.Flow = &domain.DeleteConfirm{PhotoID: f.PhotoID}
	case domain.CommandUpdate:
		sess.Flow = &domain.EditDescriptionCapture{
			PhotoID:                f.PhotoID,
			NewDescription:         f.NewDescription,
			NewDescriptionTranslit: f.NewDescriptionTranslit,
		}
	default:
		return nil, fmt.Errorf("unknown flow kind %q", f.Kind)
	}
	return sess, nil
}
