package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dmitrymomot/webstarter/pkg/session"
)

// DefaultSessionsCollection is used when no collection name is given.
const DefaultSessionsCollection = "sessions"

const ttlIndexName = "expires_at_ttl"

type sessionDocument struct {
	ID        string         `bson:"_id"`
	Data      map[string]any `bson:"data,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
	ExpiresAt time.Time      `bson:"expires_at"`
}

// SessionStore keeps session records in a MongoDB collection, one document
// per session keyed by the session id.
type SessionStore struct {
	coll *mongo.Collection
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore returns a store over db.collection.
func NewSessionStore(db *mongo.Database, collection string) *SessionStore {
	if collection == "" {
		collection = DefaultSessionsCollection
	}
	return &SessionStore{coll: db.Collection(collection)}
}

// EnsureIndexes creates the TTL index that lets MongoDB drop expired
// records on its own.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName(ttlIndexName).SetExpireAfterSeconds(0),
	})
	return err
}

// Ping reports whether the primary, which takes every session write, answers.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.Join(ErrStoreUnreachable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (s *SessionStore) Put(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return session.ErrInvalidSession
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: sess.ID}},
		toDocument(sess),
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func toDocument(sess *session.Session) sessionDocument {
	return sessionDocument{
		ID:        sess.ID,
		Data:      sess.Data,
		CreatedAt: sess.CreatedAt.UTC().Truncate(time.Millisecond),
		ExpiresAt: sess.ExpiresAt.UTC().Truncate(time.Millisecond),
	}
}

func fromDocument(doc sessionDocument) *session.Session {
	data := make(map[string]any, len(doc.Data))
	for k, v := range doc.Data {
		data[k] = normalize(v)
	}
	return session.Restore(doc.ID, data, doc.CreatedAt, doc.ExpiresAt)
}

// normalize turns nested BSON containers into plain maps and slices so
// session values look the same whichever store produced them.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case bson.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	default:
		return v
	}
}

func normalizeMap(in map[string]any) map[string]any {
	m := make(map[string]any, len(in))
	for k, v := range in {
		m[k] = normalize(v)
	}
	return m
}

func normalizeSlice(in []any) []any {
	s := make([]any, len(in))
	for i, v := range in {
		s[i] = normalize(v)
	}
	return s
}
