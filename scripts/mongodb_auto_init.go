package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"omnily-go-admin/mongodb"
	"omnily-go-admin/pkg/config"
)

// Bootstraps the MongoDB log store: makes sure the request-log and
// audit collections exist and carry the indexes the monitoring queries
// depend on. Safe to run repeatedly.

type collectionInfo struct {
	Database   string
	Collection string
	Indexes    []indexInfo
}

type indexInfo struct {
	Keys   bson.D
	Unique bool
	Name   string
}

var requiredCollections = []collectionInfo{
	{
		Database:   "omnily_log_db",
		Collection: "logs",
		Indexes: []indexInfo{
			{Keys: bson.D{{Key: "timestamp", Value: -1}}, Name: "timestamp_desc"},
			{Keys: bson.D{{Key: "type", Value: 1}}, Name: "type_idx"},
			{Keys: bson.D{{Key: "path", Value: 1}}, Name: "path_idx"},
			{Keys: bson.D{{Key: "status_code", Value: 1}}, Name: "status_code_idx"},
			{Keys: bson.D{{Key: "action", Value: 1}}, Name: "action_idx"},
			{Keys: bson.D{{Key: "organization_id", Value: 1}}, Name: "organization_id_idx"},
		},
	},
}

func main() {
	log.Printf("initializing MongoDB collections and indexes...")

	if err := config.InitConfig(); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	mongodb.InitMongoDB()

	var totalIndexes int
	for _, collInfo := range requiredCollections {
		log.Printf("database %s, collection %s", collInfo.Database, collInfo.Collection)

		collection := mongodb.GetCollection(collInfo.Database, collInfo.Collection)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		for _, idx := range collInfo.Indexes {
			model := mongo.IndexModel{
				Keys:    idx.Keys,
				Options: options.Index().SetUnique(idx.Unique).SetName(idx.Name),
			}
			if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
				if isIndexExistsError(err) {
					log.Printf("index %s already exists, skipping", idx.Name)
				} else {
					log.Printf("index %s creation failed: %v", idx.Name, err)
					continue
				}
			} else {
				log.Printf("index %s created", idx.Name)
			}
			totalIndexes++
		}
		cancel()
	}

	fmt.Printf("done, %d indexes verified\n", totalIndexes)
}

func isIndexExistsError(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "IndexKeySpecsConflict")
}
