package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

const themeDocID = "theme"

type preferencesDoc struct {
	ID                 string `bson:"_id"`
	models.Preferences `bson:",inline"`
}

type PreferencesRepository struct {
	coll *mongo.Collection
}

func NewPreferencesRepository(db *mongo.Database) *PreferencesRepository {
	return &PreferencesRepository{coll: db.Collection(preferencesCollection)}
}

func (r *PreferencesRepository) Load(ctx context.Context) (models.Preferences, error) {
	var doc preferencesDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": themeDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return models.Preferences{}, err
	}
	return doc.Preferences, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, p models.Preferences) error {
	doc := preferencesDoc{ID: themeDocID, Preferences: p}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": themeDocID}, doc, options.Replace().SetUpsert(true))
	return err
}
