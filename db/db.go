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
	StoresCollection     *mongo.Collection
	ProductsCollection   *mongo.Collection
	CategoriesCollection *mongo.Collection
	ZonesCollection      *mongo.Collection
	OrdersCollection     *mongo.Collection
	MerchantsCollection  *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	StoresCollection = Client.Database("tiendadb").Collection("stores")
	ProductsCollection = Client.Database("tiendadb").Collection("products")
	CategoriesCollection = Client.Database("tiendadb").Collection("categories")
	ZonesCollection = Client.Database("tiendadb").Collection("deliveryzones")
	OrdersCollection = Client.Database("tiendadb").Collection("orders")
	MerchantsCollection = Client.Database("tiendadb").Collection("merchants")
}
