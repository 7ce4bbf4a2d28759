package repository

import (
	"context"
	"testing"
	"time"

	"frontline/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const formsNS = "frontline.forms"

func storedForm(oid primitive.ObjectID, name string) bson.D {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "areticalNo", Value: "AR-1"},
		{Key: "name", Value: name},
		{Key: "date", Value: "2024-03-01"},
		{Key: "warpDetails", Value: bson.A{"40s"}},
		{Key: "weftDetails", Value: bson.A{"30s"}},
		{Key: "dyingMillName", Value: ""},
		{Key: "fabricsShortage", Value: ""},
		{Key: "code", Value: "data:image/png;base64,AAAA"},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestMongoFormRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create stamps timestamps", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		f := newForm("created")
		require.NoError(mt, repo.Create(ctx, f))
		assert.False(mt, f.CreatedAt.IsZero())
		assert.Equal(mt, f.CreatedAt, f.UpdatedAt)
	})

	mt.Run("create surfaces write errors", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		assert.Error(mt, repo.Create(ctx, newForm("dup")))
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, formsNS, mtest.FirstBatch, storedForm(oid, "found")))

		got, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), got.ID)
		assert.Equal(mt, "found", got.Name)
		assert.Len(mt, got.WarpDetails, 1)
		assert.Nil(mt, got.WarpRate)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, formsNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)

		_, err := repo.GetByID(ctx, "xyz")
		assert.ErrorIs(mt, err, ErrNotFound)
		_, err = repo.UpdateRates(ctx, "xyz", domain.RatesUpdate{SetWarpRate: true})
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.ErrorIs(mt, repo.Delete(ctx, "xyz"), ErrNotFound)
	})

	mt.Run("list and count", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, formsNS, mtest.FirstBatch,
			storedForm(second, "second"),
			storedForm(first, "first"),
		))

		forms, err := repo.List(ctx, 30, 0)
		require.NoError(mt, err)
		require.Len(mt, forms, 2)
		assert.Equal(mt, second.Hex(), forms[0].ID)
		assert.Equal(mt, "first", forms[1].Name)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, formsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}))
		total, err := repo.Count(ctx)
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, total)
	})

	mt.Run("update rates returns the new document", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		oid := primitive.NewObjectID()
		doc := append(storedForm(oid, "rated"), bson.E{Key: "warpRate", Value: "12"})
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}})

		warp := "12"
		got, err := repo.UpdateRates(ctx, oid.Hex(), domain.RatesUpdate{WarpRate: &warp, SetWarpRate: true})
		require.NoError(mt, err)
		require.NotNil(mt, got.WarpRate)
		assert.Equal(mt, "12", *got.WarpRate)
		assert.Nil(mt, got.WeftRate)
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.Replace(ctx, primitive.NewObjectID().Hex(), domain.FormReplacement{Name: "x"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("replace leaves rates alone", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: storedForm(oid, "x")}})

		_, err := repo.Replace(ctx, oid.Hex(), domain.FormReplacement{Name: "x"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		set := evt.Command.Lookup("update", "$set").Document()
		assert.Equal(mt, "x", set.Lookup("name").StringValue())
		_, err = set.LookupErr("warpRate")
		assert.Error(mt, err)
		_, err = set.LookupErr("weftRate")
		assert.Error(mt, err)
	})

	mt.Run("update rates clears a null rate", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: storedForm(oid, "x")}})

		got, err := repo.UpdateRates(ctx, oid.Hex(), domain.RatesUpdate{SetWeftRate: true})
		require.NoError(mt, err)
		assert.Nil(mt, got.WeftRate)

		set := mt.GetStartedEvent().Command.Lookup("update", "$set").Document()
		assert.Equal(mt, bson.TypeNull, set.Lookup("weftRate").Type)
		_, err = set.LookupErr("warpRate")
		assert.Error(mt, err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoFormRepository(mt.DB)
		id := primitive.NewObjectID().Hex()

		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "acknowledged", Value: true}, {Key: "n", Value: 1}})
		require.NoError(mt, repo.Delete(ctx, id))

		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "acknowledged", Value: true}, {Key: "n", Value: 0}})
		assert.ErrorIs(mt, repo.Delete(ctx, id), ErrNotFound)
	})
}
