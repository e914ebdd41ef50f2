package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/infra/persistence/model"
)

const defaultCollectionName = "layouts"

type LayoutRepository struct {
	coll *mongo.Collection
}

func NewLayoutRepository(db *mongo.Database) *LayoutRepository {
	return &LayoutRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

// EnsureIndexes 建立 updated_at 索引，按最近修改排查布局时使用
func (r *LayoutRepository) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb layout collection is nil")
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: -1}},
		Options: options.Index().SetName("idx_updated_at"),
	})
	return err
}

func (r *LayoutRepository) Load(ctx context.Context, id string) (domain.Layout, error) {
	if r == nil || r.coll == nil {
		return domain.Layout{}, errors.New("mongodb layout collection is nil")
	}

	var doc model.LayoutDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == nil {
		return model.DocToLayout(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Layout{}, domain.ErrLayoutNotFound
	}
	return domain.Layout{}, err
}

// Save 以 upsert 覆盖整份文档，created_at 只在首次插入时写入。
func (r *LayoutRepository) Save(ctx context.Context, l domain.Layout) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb layout collection is nil")
	}

	now := time.Now()
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	doc := model.LayoutToDoc(l)

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": doc.ID},
		bson.M{
			"$set": bson.M{
				"payload":    doc.Payload,
				"grid_size":  doc.GridSize,
				"cell_size":  doc.CellSize,
				"updated_at": doc.UpdatedAt,
			},
			"$setOnInsert": bson.M{"created_at": doc.CreatedAt},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}
