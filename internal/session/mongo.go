package session

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps session slots in the "sessions" collection, one document
// per kind, and logout audit records in "session_audit".
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

type sessionDoc struct {
	Kind    Kind    `bson:"kind"`
	Session Session `bson:"session"`
}

func (s *MongoStore) Load(ctx context.Context, kind Kind) (*Session, error) {
	var doc sessionDoc
	err := s.db.Collection("sessions").FindOne(ctx, bson.M{"kind": kind}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Session, nil
}

func (s *MongoStore) Save(ctx context.Context, kind Kind, sess Session) error {
	_, err := s.db.Collection("sessions").ReplaceOne(
		ctx,
		bson.M{"kind": kind},
		sessionDoc{Kind: kind, Session: sess},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Clear(ctx context.Context, kind Kind) (*LastLogout, error) {
	existing, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if _, err := s.db.Collection("sessions").DeleteOne(ctx, bson.M{"kind": kind}); err != nil {
		return nil, err
	}

	audit := LastLogout{
		Kind:            kind,
		LogoutAt:        time.Now(),
		DurationSeconds: int64(time.Since(existing.LoginAt) / time.Second),
	}
	_, err = s.db.Collection("session_audit").ReplaceOne(
		ctx,
		bson.M{"kind": kind},
		audit,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return &audit, nil
}

func (s *MongoStore) LastLogout(ctx context.Context, kind Kind) (*LastLogout, error) {
	var audit LastLogout
	err := s.db.Collection("session_audit").FindOne(ctx, bson.M{"kind": kind}).Decode(&audit)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &audit, nil
}
