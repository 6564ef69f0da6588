package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createStopsIndexes()
	createRoutesIndexes()
	createJourneysIndexes()
}

func createStopsIndexes() {
	stopsCollection := GetCollection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stopsCollection.Indexes().CreateMany(context.Background(), stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createRoutesIndexes() {
	routesCollection := GetCollection("routes")
	routesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := routesCollection.Indexes().CreateMany(context.Background(), routesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createJourneysIndexes() {
	journeysCollection := GetCollection("journeys")

	journeyDurationSamplesIndexName := "JourneyDurationSamples"
	_, err := journeysCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeref", Value: 1}},
		},
		{
			Options: &options.IndexOptions{
				Name: &journeyDurationSamplesIndexName,
			},
			Keys: bson.D{
				{Key: "routeref", Value: 1},
				{Key: "status", Value: 1},
				{Key: "datasource", Value: 1},
				{Key: "starttime", Value: -1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
