package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
)

// StudentRepo implements student.Store on a MongoDB collection. Ids are
// ObjectID hex strings.
type StudentRepo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewStudentRepo creates a repository over coll.
func NewStudentRepo(coll *mongo.Collection, log *zap.Logger) *StudentRepo {
	return &StudentRepo{coll: coll, log: log}
}

// studentDocument is the stored shape of a student.
type studentDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Name   string             `bson:"name,omitempty"`
	Email  string             `bson:"email,omitempty"`
	Age    *float64           `bson:"age,omitempty"`
	Course string             `bson:"course,omitempty"`
	Gender string             `bson:"gender,omitempty"`
}

func (d studentDocument) toDomain() student.Student {
	return student.Student{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Email:  d.Email,
		Age:    d.Age,
		Course: d.Course,
		Gender: d.Gender,
	}
}

// setDocument lists the fields present in f for a $set update. Empty
// strings are kept so a client can blank a field.
func setDocument(f student.Fields) bson.M {
	set := bson.M{}
	if f.Name != nil {
		set["name"] = *f.Name
	}
	if f.Email != nil {
		set["email"] = *f.Email
	}
	if f.Age != nil {
		set["age"] = *f.Age
	}
	if f.Course != nil {
		set["course"] = *f.Course
	}
	if f.Gender != nil {
		set["gender"] = *f.Gender
	}
	return set
}

// objectID parses an opaque id; anything that is not an ObjectID cannot
// name a stored record and is reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewNotFoundError("student", id)
	}
	return oid, nil
}

// Create inserts a new document with a fresh ObjectID.
func (r *StudentRepo) Create(ctx context.Context, f student.Fields) (*student.Student, error) {
	s := student.New(f)
	doc := studentDocument{
		ID:     primitive.NewObjectID(),
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Course: s.Course,
		Gender: s.Gender,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.Error("failed to insert student", zap.Error(err))
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	r.log.Info("student inserted", zap.String("id", doc.ID.Hex()))
	out := doc.toDomain()
	return &out, nil
}

// List returns every document ordered by _id, which follows insertion order.
func (r *StudentRepo) List(ctx context.Context) ([]student.Student, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.log.Error("failed to query students", zap.Error(err))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	docs := make([]studentDocument, 0)
	if err := cur.All(ctx, &docs); err != nil {
		r.log.Error("failed to decode students", zap.Error(err))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	students := make([]student.Student, len(docs))
	for i, d := range docs {
		students[i] = d.toDomain()
	}
	return students, nil
}

// GetByID fetches one document by id.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*student.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc studentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("student", id)
		}
		r.log.Error("failed to get student", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	out := doc.toDomain()
	return &out, nil
}

// UpdateByID applies f with $set and returns the document after the update.
func (r *StudentRepo) UpdateByID(ctx context.Context, id string, f student.Fields) (*student.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	// $set rejects an empty document
	if f.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var doc studentDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": setDocument(f)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warn("update of unknown student", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("student", id)
		}
		r.log.Error("failed to update student", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	r.log.Info("student updated", zap.String("id", id))
	out := doc.toDomain()
	return &out, nil
}

// DeleteByID removes one document by id.
func (r *StudentRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.log.Error("failed to delete student", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		r.log.Warn("delete of unknown student", zap.String("id", id))
		return apperrors.NewNotFoundError("student", id)
	}

	r.log.Info("student deleted", zap.String("id", id))
	return nil
}
