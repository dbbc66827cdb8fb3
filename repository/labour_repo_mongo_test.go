package repository

import (
	"context"
	"errors"
	"testing"

	mongodb "abinterior/db/mongo"
	"abinterior/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoLabourRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "abinterior.labours", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Ramesh"},
			{Key: "phone", Value: "9876500000"},
			{Key: "payments", Value: bson.A{
				bson.D{{Key: "id", Value: "p1"}, {Key: "date", Value: "2024-07-01"}, {Key: "amount", Value: 1200.0}},
				bson.D{{Key: "id", Value: "p2"}, {Key: "date", Value: "2024-07-08"}, {Key: "amount", Value: 800.0}},
			}},
		}))

		repo := NewMongoLabourRepo(mongodb.NewMongoDBFromClient(mt.Client, "abinterior"))
		l, err := repo.FindLabourByID(ctx, oid.Hex())
		if err != nil {
			mt.Fatalf("FindLabourByID: %v", err)
		}
		if got := models.LabourTotalPaid(l.Payments); got != 2000 {
			mt.Fatalf("total paid = %v, want 2000", got)
		}
	})

	mt.Run("delete missing payment", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		repo := NewMongoLabourRepo(mongodb.NewMongoDBFromClient(mt.Client, "abinterior"))
		err := repo.DeleteLabourPayment(ctx, primitive.NewObjectID().Hex(), "nope")
		if !errors.Is(err, models.ErrNotFound) {
			mt.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoLabourRepo(mongodb.NewMongoDBFromClient(mt.Client, "abinterior"))
		if err := repo.DeleteLabour(ctx, "xyz"); !errors.Is(err, models.ErrNotFound) {
			mt.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}
