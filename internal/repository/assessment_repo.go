package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cardiocheck/internal/model"
)

// AssessmentRepo handles MongoDB operations for completed assessments
type AssessmentRepo interface {
	Create(ctx context.Context, record *model.AssessmentRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.AssessmentRecord, error)
	GetByPatientID(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, record *model.AssessmentRecord) (string, error) {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	var record model.AssessmentRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *assessmentRepo) GetByPatientID(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
