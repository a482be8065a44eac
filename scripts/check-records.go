package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// recordEnvelope splits a stored record into its metadata and body
type recordEnvelope struct {
	ID       int64           `json:"id"`
	Creature json.RawMessage `json:"creature"`
	Item     json.RawMessage `json:"item"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for records that no longer validate...")

	var invalidKeys []string
	var checkedCount int

	for _, entityType := range []string{entities.EntityTypeCreature, entities.EntityTypeItem} {
		iter := client.Scan(ctx, 0, entityType+":*", 0).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			if !isRecordKey(key, entityType) {
				continue
			}
			checkedCount++

			data, err := client.Get(ctx, key).Result()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", key, err)
				continue
			}

			if err := checkRecord(entityType, []byte(data)); err != nil {
				fmt.Printf("✗ %s: %v\n", key, err)
				invalidKeys = append(invalidKeys, key)
			}
		}
		if err := iter.Err(); err != nil {
			log.Fatal("Error during scan:", err)
		}
	}

	fmt.Printf("\nChecked %d records, found %d invalid\n", checkedCount, len(invalidKeys))

	if len(invalidKeys) == 0 {
		fmt.Println("All records validate!")
		return
	}

	fmt.Println("\nInvalid records:")
	for _, key := range invalidKeys {
		fmt.Printf("  - %s\n", key)
	}

	// Version history and owner indexes are left alone so a record can be
	// restored from an earlier version by hand
	fmt.Print("\nDo you want to DELETE the current document of these records? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range invalidKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// isRecordKey matches "{type}:{id}" and skips the version, owner and counter keys
func isRecordKey(key, entityType string) bool {
	id, ok := strings.CutPrefix(key, entityType+":")
	if !ok {
		return false
	}
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil
}

func checkRecord(entityType string, data []byte) error {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("corrupted JSON: %w", err)
	}

	switch entityType {
	case entities.EntityTypeCreature:
		if len(env.Creature) == 0 || string(env.Creature) == "null" {
			return fmt.Errorf("record %d has no creature", env.ID)
		}
		_, err := entities.ParseCreature(env.Creature)
		return err
	case entities.EntityTypeItem:
		if len(env.Item) == 0 || string(env.Item) == "null" {
			return fmt.Errorf("record %d has no item", env.ID)
		}
		_, err := entities.ParseItem(env.Item)
		return err
	}
	return nil
}
