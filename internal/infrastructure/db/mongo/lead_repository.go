package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const (
	collectionLeads    = "leads"
	collectionCounters = "counters"
	leadCounterID      = "lead_id"
)

// LeadRepository is the persistent lead store. Monotonic IDs come from a
// counter document incremented atomically, so IDs are never reused even
// across process restarts.
type LeadRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		col:      db.Collection(collectionLeads),
		counters: db.Collection(collectionCounters),
	}
}

func (r *LeadRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": leadCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next lead id: %w", err)
	}
	return counter.Seq, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	stored := *lead
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, &stored); err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return &stored, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lead
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, filter ports.LeadFilter) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AssignedTo != nil {
		query["assigned_user_id"] = bson.M{"$in": filter.AssignedTo}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Lead
	for cur.Next(ctx) {
		var l domain.Lead
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("decode lead: %w", err)
		}
		out = append(out, &l)
	}
	return out, cur.Err()
}

// AssignUnassigned claims unassigned leads one document at a time with a
// guarded update, so two concurrent bulk passes never assign the same lead.
func (r *LeadRepository) AssignUnassigned(ctx context.Context, agentID int64, maxCount int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	assigned := 0
	for assigned < maxCount {
		opts := options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "score", Value: -1}, {Key: "_id", Value: 1}})
		res := r.col.FindOneAndUpdate(ctx,
			bson.M{"assigned_user_id": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"assigned_user_id": agentID, "updated_at": now}},
			opts,
		)
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return assigned, fmt.Errorf("assign unassigned: %w", err)
		}
		assigned++
	}
	return assigned, nil
}

func (r *LeadRepository) MarkDocsSent(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"docs_sent": true, "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark docs sent: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes the list and assignment queries rely on.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "score", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
