package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	obituaryCollection   = "necrologi"
	condolenceCollection = "condoglianze"
)

// Store is the document remote store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	loc    *time.Location
}

// Connect creates the client; the driver connects lazily so an unreachable
// server surfaces in Init. Stored dates are read in loc.
func Connect(ctx context.Context, uri, database string, loc *time.Location) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	return &Store{client: client, db: client.Database(database), loc: loc}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}
	_, err := s.db.Collection(condolenceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "necrologioId", Value: 1}, {Key: "dataInvio", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create condolence index: %w", err)
	}
	return nil
}

func (s *Store) FetchObituaries(ctx context.Context) ([]source.RemoteRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(obituaryCollection).Find(ctx, bson.M{"status": "active"}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query obituaries: %w", err)
	}
	var docs []ObituaryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode obituaries: %w", err)
	}
	recs := make([]source.RemoteRecord, len(docs))
	for i, d := range docs {
		recs[i] = d.Record(s.loc)
	}
	return recs, nil
}

func (s *Store) AppendCondolence(ctx context.Context, obituaryID string, in obituary.CondolenceInput) (string, error) {
	doc := CondolenceDoc{
		ID:           uuid.NewString(),
		NecrologioID: obituaryID,
		Nome:         in.Name,
		Email:        in.Email,
		Messaggio:    in.Message,
		DataInvio:    time.Now().UTC(),
		Status:       "active",
	}
	if _, err := s.db.Collection(condolenceCollection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert condolence: %w", err)
	}
	return doc.ID, nil
}

func (s *Store) FetchCondolences(ctx context.Context, obituaryID string) ([]obituary.Condolence, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dataInvio", Value: -1}})
	cursor, err := s.db.Collection(condolenceCollection).Find(ctx, bson.M{"necrologioId": obituaryID, "status": "active"}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query condolences: %w", err)
	}
	var docs []CondolenceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode condolences: %w", err)
	}
	out := make([]obituary.Condolence, len(docs))
	for i, d := range docs {
		out[i] = d.Condolence()
	}
	return out, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
