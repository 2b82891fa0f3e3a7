package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

type LicenseRepository struct {
	coll *mongo.Collection
}

func NewLicenseRepository(db *mongo.Database) *LicenseRepository {
	return &LicenseRepository{coll: db.Collection(licensesCollection)}
}

func (r *LicenseRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "company_id", Value: 1}},
		Options: options.Index().SetName("idx_company_id"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// índice já existe com outras opções: recria
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 {
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "idx_company_id"); dropErr != nil {
			return fmt.Errorf("drop index idx_company_id: %w", dropErr)
		}
		_, err = r.coll.Indexes().CreateOne(ctx, model)
	}
	return err
}

func (r *LicenseRepository) GetAll(ctx context.Context) ([]models.License, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.License{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *LicenseRepository) GetByID(ctx context.Context, id string) (*models.License, error) {
	var l models.License
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LicenseRepository) Save(ctx context.Context, l *models.License) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	return err
}

func (r *LicenseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
