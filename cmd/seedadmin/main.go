// Command seedadmin creates or updates an administrator account. The
// portal has no self-registration for admins, so the first account is
// provisioned out of band with this tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	mongodb "github.com/akti/portal-api/internal/infrastructure/db/mongo"
)

const bcryptCost = 10

func main() {
	var (
		uri      = flag.String("uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
		database = flag.String("db", envOr("MONGO_DB", "akti_portal"), "MongoDB database name")
		username = flag.String("username", "", "admin username (required)")
		password = flag.String("password", "", "admin password (required)")
		fullName = flag.String("fullname", "", "admin full name")
		email    = flag.String("email", "", "admin email")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "seedadmin: -username and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: *uri, Database: *database})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: hash password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	res, err := db.Collection("admins").UpdateOne(ctx,
		bson.M{"username": *username},
		bson.M{
			"$set": bson.M{
				"fullName":  *fullName,
				"password":  string(hash),
				"email":     *email,
				"isAdmin":   true,
				"isCSR":     false,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: upsert admin: %v\n", err)
		os.Exit(1)
	}

	if res.UpsertedCount > 0 {
		fmt.Printf("created admin %q\n", *username)
	} else {
		fmt.Printf("updated admin %q\n", *username)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
