package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

const historyCollection = "scrape_history"

// HistoryRepository persists every successful mapping as an audit
// document and serves the most recent one as a stale-data fallback.
type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{collection: db.Collection(historyCollection)}
}

type historyRecord struct {
	Carrier   string                   `bson:"carrier"`
	RefType   string                   `bson:"ref_type"`
	RefNum    string                   `bson:"ref_num"`
	Document  *domain.ShipmentTracking `bson:"document"`
	CreatedAt time.Time                `bson:"created_at"`
}

func (r *HistoryRepository) Insert(ctx context.Context, carrier string, refType domain.RefType, refNum string, doc *domain.ShipmentTracking) error {
	record := historyRecord{
		Carrier:   carrier,
		RefType:   string(refType),
		RefNum:    refNum,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert scrape history: %w", err)
	}
	return nil
}

// FindLatest returns the most recent document for the reference, or
// (nil, nil) when none has been recorded.
func (r *HistoryRepository) FindLatest(ctx context.Context, carrier string, refType domain.RefType, refNum string) (*domain.ShipmentTracking, error) {
	filter := bson.M{
		"carrier":  carrier,
		"ref_type": string(refType),
		"ref_num":  refNum,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var record historyRecord
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest scrape: %w", err)
	}
	return record.Document, nil
}
