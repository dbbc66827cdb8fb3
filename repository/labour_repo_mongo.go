package repository

import (
	"context"
	"time"

	mongodb "abinterior/db/mongo"
	"abinterior/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const laboursCollection = "labours"

type labourDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	models.Labour `bson:",inline"`
}

func (d *labourDoc) toModel() *models.Labour {
	l := d.Labour
	l.ID = d.ID.Hex()
	if l.Payments == nil {
		l.Payments = []models.LabourPayment{}
	}
	return &l
}

type MongoLabourRepo struct {
	DB *mongodb.MongoDB
}

func NewMongoLabourRepo(db *mongodb.MongoDB) *MongoLabourRepo {
	return &MongoLabourRepo{DB: db}
}

func (r *MongoLabourRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.DB.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(laboursCollection), nil
}

func (r *MongoLabourRepo) FindAllLabours(ctx context.Context) ([]*models.Labour, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, mongoErr(err)
	}
	defer cur.Close(ctx)

	out := []*models.Labour{}
	for cur.Next(ctx) {
		var d labourDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, mongoErr(cur.Err())
}

func (r *MongoLabourRepo) FindLabourByID(ctx context.Context, id string) (*models.Labour, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var d labourDoc
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.toModel(), nil
}

func (r *MongoLabourRepo) CreateLabour(ctx context.Context, labour *models.Labour) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if labour.CreatedAt.IsZero() {
		labour.CreatedAt = time.Now().UTC()
	}
	if labour.Payments == nil {
		labour.Payments = []models.LabourPayment{}
	}

	d := labourDoc{ID: primitive.NewObjectID(), Labour: *labour}
	if _, err := coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	labour.ID = d.ID.Hex()
	return nil
}

func (r *MongoLabourRepo) DeleteLabour(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongoErr(err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoLabourRepo) AddLabourPayment(ctx context.Context, labourID string, payment models.LabourPayment) error {
	oid, err := primitive.ObjectIDFromHex(labourID)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"payments": payment}})
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoLabourRepo) DeleteLabourPayment(ctx context.Context, labourID, paymentID string) error {
	oid, err := primitive.ObjectIDFromHex(labourID)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "payments.id": paymentID},
		bson.M{"$pull": bson.M{"payments": bson.M{"id": paymentID}}},
	)
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
