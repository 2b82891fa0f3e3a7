package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

type CompanyRepository struct {
	coll     *mongo.Collection
	licenses *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{
		coll:     db.Collection(companiesCollection),
		licenses: db.Collection(licensesCollection),
	}
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Company{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save faz upsert pelo _id.
func (r *CompanyRepository) Save(ctx context.Context, c *models.Company) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}

// Delete remove a empresa e, na mesma transação, as licenças dela.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return withTransaction(ctx, r.coll.Database().Client(), func(ctx context.Context) error {
		if _, err := r.licenses.DeleteMany(ctx, bson.M{"company_id": id}); err != nil {
			return err
		}
		_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
		return err
	})
}
