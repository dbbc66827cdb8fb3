package repository

import (
	"context"
	"time"

	mongodb "abinterior/db/mongo"
	"abinterior/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileDoc struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	models.BusinessProfile `bson:",inline"`
}

type MongoProfileRepo struct {
	DB *mongodb.MongoDB
}

func NewMongoProfileRepo(db *mongodb.MongoDB) *MongoProfileRepo {
	return &MongoProfileRepo{DB: db}
}

func (r *MongoProfileRepo) SaveProfile(ctx context.Context, profile *models.BusinessProfile) error {
	db, err := r.DB.Database(ctx)
	if err != nil {
		return err
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	d := profileDoc{ID: primitive.NewObjectID(), BusinessProfile: *profile}
	if _, err := db.Collection("business_profile").InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	profile.ID = d.ID.Hex()
	return nil
}

// GetProfile returns the most recently saved profile
func (r *MongoProfileRepo) GetProfile(ctx context.Context) (*models.BusinessProfile, error) {
	db, err := r.DB.Database(ctx)
	if err != nil {
		return nil, err
	}

	var d profileDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	err = db.Collection("business_profile").FindOne(ctx, bson.M{}, opts).Decode(&d)
	if err != nil {
		if err = mongoErr(err); err == models.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	profile := d.BusinessProfile
	profile.ID = d.ID.Hex()
	return &profile, nil
}
