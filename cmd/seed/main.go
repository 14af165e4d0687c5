package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cardiocheck/internal/engine"
	"cardiocheck/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("cardiocheck")
	assessmentColl := db.Collection("assessments")

	patientID := "pt_demo0001"

	raw := model.RawFormInput{
		Age:          "61",
		Sex:          "1",
		CP:           "0",
		Trestbps:     "148",
		Chol:         "274",
		Restecg:      "1",
		Thalach:      "122",
		Exang:        "1",
		Oldpeak:      "1.8",
		Slope:        "1",
		DiabetesType: "type2",
	}
	input := engine.Normalize(raw, model.ModeFull)

	prob := 0.78
	level, pct := engine.Classify(model.PredictionOutcome{
		PredictedClass: 1,
		Probability:    &prob,
	})

	record := model.AssessmentRecord{
		ID:        primitive.NewObjectID().Hex(),
		PatientID: patientID,
		SessionID: "s_demo0001",
		Mode:      model.ModeFull,
		Input:     input,
		Result: model.AssessmentResult{
			RiskLevel:          level,
			RiskPercentage:     pct,
			AccuracyPercentage: model.ModeFull.AccuracyPercentage(),
			Recommendations:    engine.Recommend(level),
			PredictedClass:     1,
			Probability:        &prob,
			Interpretation:     "Demo assessment seeded for local development.",
			CompletedAt:        time.Now(),
		},
		CreatedAt: time.Now(),
	}

	if _, err := assessmentColl.InsertOne(ctx, &record); err != nil {
		log.Fatalf("Failed to insert assessment: %v", err)
	}

	fmt.Printf("Successfully created demo assessment %s for patient '%s' (%s, %d%%)\n",
		record.ID, patientID, level, pct)
}
