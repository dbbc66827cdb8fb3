package repository

import (
	"context"
	"errors"
	"time"

	mongodb "abinterior/db/mongo"
	"abinterior/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const customersCollection = "customers"

// customerDoc maps the opaque string id onto the store's ObjectID.
type customerDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.Customer `bson:",inline"`
}

func (d *customerDoc) toModel() *models.Customer {
	c := d.Customer
	c.ID = d.ID.Hex()
	if c.Transactions == nil {
		c.Transactions = []models.Transaction{}
	}
	return &c
}

type MongoCustomerRepo struct {
	DB *mongodb.MongoDB
}

func NewMongoCustomerRepo(db *mongodb.MongoDB) *MongoCustomerRepo {
	return &MongoCustomerRepo{DB: db}
}

func (r *MongoCustomerRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.DB.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(customersCollection), nil
}

// FindAllCustomers returns every customer ordered by name
func (r *MongoCustomerRepo) FindAllCustomers(ctx context.Context) ([]*models.Customer, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, mongoErr(err)
	}
	defer cur.Close(ctx)

	out := []*models.Customer{}
	for cur.Next(ctx) {
		var d customerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, mongoErr(cur.Err())
}

func (r *MongoCustomerRepo) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoCustomerRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MongoCustomerRepo) findOne(ctx context.Context, filter bson.M) (*models.Customer, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var d customerDoc
	if err := coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.toModel(), nil
}

// CreateCustomer inserts the customer with its seed transactions embedded
func (r *MongoCustomerRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	// $push needs an array, never null
	if customer.Transactions == nil {
		customer.Transactions = []models.Transaction{}
	}

	d := customerDoc{ID: primitive.NewObjectID(), Customer: *customer}
	if _, err := coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	customer.ID = d.ID.Hex()
	return nil
}

func (r *MongoCustomerRepo) UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       fields.Name,
		"phone":      fields.Phone,
		"address":    fields.Address,
		"billNumber": fields.BillNumber,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes the document and, with it, every embedded transaction
func (r *MongoCustomerRepo) DeleteCustomer(ctx context.Context, id string) error {
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

func (r *MongoCustomerRepo) AddTransaction(ctx context.Context, customerID string, tx models.Transaction) error {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"transactions": tx}})
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoCustomerRepo) UpdateTransaction(ctx context.Context, customerID string, tx models.Transaction, expectedVersion int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return 0, models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}

	match := bson.M{"id": tx.ID}
	if expectedVersion > 0 {
		match["version"] = expectedVersion
	}
	filter := bson.M{"_id": oid, "transactions": bson.M{"$elemMatch": match}}
	update := bson.M{
		"$set": bson.M{
			"transactions.$.date":       tx.Date,
			"transactions.$.amount":     tx.Amount,
			"transactions.$.type":       tx.Type,
			"transactions.$.mode":       tx.Mode,
			"transactions.$.billNumber": tx.BillNumber,
			"transactions.$.notes":      tx.Notes,
			"updatedAt":                 time.Now().UTC(),
		},
		"$inc": bson.M{"transactions.$.version": 1},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"transactions": bson.M{"$elemMatch": bson.M{"id": tx.ID}}})

	var updated struct {
		Transactions []models.Transaction `bson:"transactions"`
	}
	err = coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		if len(updated.Transactions) == 0 {
			return 0, models.ErrNotFound
		}
		return updated.Transactions[0].Version, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, mongoErr(err)
	}
	if expectedVersion == 0 {
		return 0, models.ErrNotFound
	}

	// Either the transaction is gone or someone else bumped its version first.
	n, err := coll.CountDocuments(ctx, bson.M{"_id": oid, "transactions.id": tx.ID})
	if err != nil {
		return 0, mongoErr(err)
	}
	if n > 0 {
		return 0, models.ErrConflict
	}
	return 0, models.ErrNotFound
}

func (r *MongoCustomerRepo) DeleteTransaction(ctx context.Context, customerID, transactionID string) error {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return models.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "transactions.id": transactionID},
		bson.M{"$pull": bson.M{"transactions": bson.M{"id": transactionID}}},
	)
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
