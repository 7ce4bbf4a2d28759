package repository

import (
	"context"
	"errors"
	"time"

	"frontline/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const formsCollection = "forms"

// formDocument is the stored shape of a form in the document database.
type formDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	AreticalNo      string             `bson:"areticalNo"`
	Name            string             `bson:"name"`
	Date            string             `bson:"date"`
	WarpDetails     []any              `bson:"warpDetails"`
	WeftDetails     []any              `bson:"weftDetails"`
	DyingMillName   string             `bson:"dyingMillName"`
	FabricsShortage string             `bson:"fabricsShortage"`
	Code            string             `bson:"code"`
	WeftRate        *string            `bson:"weftRate,omitempty"`
	WarpRate        *string            `bson:"warpRate,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toDocument(f *domain.Form) (*formDocument, error) {
	oid, err := primitive.ObjectIDFromHex(f.ID)
	if err != nil {
		return nil, err
	}
	return &formDocument{
		ID:              oid,
		AreticalNo:      f.AreticalNo,
		Name:            f.Name,
		Date:            f.Date,
		WarpDetails:     f.WarpDetails,
		WeftDetails:     f.WeftDetails,
		DyingMillName:   f.DyingMillName,
		FabricsShortage: f.FabricsShortage,
		Code:            f.Code,
		WeftRate:        f.WeftRate,
		WarpRate:        f.WarpRate,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}, nil
}

func (d *formDocument) toDomain() *domain.Form {
	return &domain.Form{
		ID:              d.ID.Hex(),
		AreticalNo:      d.AreticalNo,
		Name:            d.Name,
		Date:            d.Date,
		WarpDetails:     d.WarpDetails,
		WeftDetails:     d.WeftDetails,
		DyingMillName:   d.DyingMillName,
		FabricsShortage: d.FabricsShortage,
		Code:            d.Code,
		WeftRate:        d.WeftRate,
		WarpRate:        d.WarpRate,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MongoFormRepository stores forms in the "forms" collection.
type MongoFormRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoFormRepository(db *mongo.Database) *MongoFormRepository {
	return &MongoFormRepository{
		coll: db.Collection(formsCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Create writes the whole form, code included, in a single insert.
func (r *MongoFormRepository) Create(ctx context.Context, f *domain.Form) error {
	now := r.now()
	f.CreatedAt, f.UpdatedAt = now, now

	doc, err := toDocument(f)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

// List returns one page of forms, newest first.
func (r *MongoFormRepository) List(ctx context.Context, limit, offset int) ([]domain.Form, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []formDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	forms := make([]domain.Form, 0, len(docs))
	for i := range docs {
		forms = append(forms, *docs[i].toDomain())
	}
	return forms, nil
}

func (r *MongoFormRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *MongoFormRepository) GetByID(ctx context.Context, id string) (*domain.Form, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc formDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Replace overwrites the full field set of the form.
func (r *MongoFormRepository) Replace(ctx context.Context, id string, rep domain.FormReplacement) (*domain.Form, error) {
	set := bson.M{
		"areticalNo":      rep.AreticalNo,
		"name":            rep.Name,
		"date":            rep.Date,
		"warpDetails":     rep.WarpDetails,
		"weftDetails":     rep.WeftDetails,
		"dyingMillName":   rep.DyingMillName,
		"fabricsShortage": rep.FabricsShortage,
		"code":            rep.Code,
	}
	return r.set(ctx, id, set)
}

// UpdateRates writes the rates marked as set in u. A set rate with no value
// is stored as null.
func (r *MongoFormRepository) UpdateRates(ctx context.Context, id string, u domain.RatesUpdate) (*domain.Form, error) {
	set := bson.M{}
	if u.SetWarpRate {
		set["warpRate"] = u.WarpRate
	}
	if u.SetWeftRate {
		set["weftRate"] = u.WeftRate
	}
	return r.set(ctx, id, set)
}

func (r *MongoFormRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFormRepository) set(ctx context.Context, id string, fields bson.M) (*domain.Form, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	fields["updatedAt"] = r.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc formDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}
