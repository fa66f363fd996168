package database

import (
	"context"
	"log"
	"sync"
	"time"

	"clinvetia/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

var initOnce sync.Once

// InitDB initializes the MongoDB connection. Initialization runs at most once
// per process; concurrent callers share the single in-flight connection.
func InitDB() {
	initOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			log.Fatalf("failed to ping MongoDB: %v", err)
		}
		MongoClient = client
		log.Println("Connected to MongoDB successfully!")
	})
}

// GetClient returns the cached client, connecting on first use.
func GetClient() *mongo.Client {
	if MongoClient == nil {
		InitDB()
	}
	return MongoClient
}

// DB returns the application database handle.
func DB() *mongo.Database {
	return GetClient().Database(config.AppConfig.DatabaseName)
}
