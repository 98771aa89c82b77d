package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ResourcesCollection    *mongo.Collection
	TemplatesCollection    *mongo.Collection
	BlackoutsCollection    *mongo.Collection
	ReservationsCollection *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(mongoURL)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("rezervdb")
	ResourcesCollection = database.Collection("resources")
	TemplatesCollection = database.Collection("templates")
	BlackoutsCollection = database.Collection("blackouts")
	ReservationsCollection = database.Collection("reservations")
}
