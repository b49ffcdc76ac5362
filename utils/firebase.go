package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	once           sync.Once
	initErr        error
	isInitialized  bool
)

// InitFirebase initializes Firebase Admin SDK and FCM client (singleton pattern)
func InitFirebase() error {
	if isInitialized {
		log.Println("ℹ️ Firebase already initialized, skipping...")
		return initErr
	}

	once.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			projectID = os.Getenv("FCM_PROJECT_ID")
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials file not found at: %s", credentialsPath)
			isInitialized = true
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			log.Println("⚠️ FIREBASE_PROJECT_ID not set - FCM will not work properly")
			isInitialized = true
			initErr = fmt.Errorf("FIREBASE_PROJECT_ID is required for FCM")
			return
		}

		config := &firebase.Config{ProjectID: projectID}
		opt := option.WithCredentialsFile(credentialsPath)

		app, err := firebase.NewApp(ctx, config, opt)
		if err != nil {
			log.Printf("❌ Error initializing Firebase app: %v", err)
			isInitialized = true
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		fcmClient, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("❌ Error getting FCM client: %v", err)
			FirebaseApp = app
			isInitialized = true
			initErr = fmt.Errorf("FCM client unavailable: %v", err)
			return
		}

		FirebaseApp = app
		FirebaseClient = fcmClient
		isInitialized = true
		log.Printf("✅ Firebase initialized for project: %s", projectID)
	})

	return initErr
}

// IsFCMEnabled reports whether push notifications can be sent
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}

// GetInitError returns the initialization error, if any
func GetInitError() error {
	return initErr
}

// SendPushToTokens sends one notification to a batch of device tokens.
// Invalid tokens are reported back so callers can prune them from the registry.
func SendPushToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	if FirebaseClient == nil {
		return nil, fmt.Errorf("FCM not initialized")
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := FirebaseClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("FCM multicast failed: %w", err)
	}

	var invalid []string
	for i, r := range resp.Responses {
		if r.Error != nil && messaging.IsUnregistered(r.Error) {
			invalid = append(invalid, tokens[i])
		}
	}

	log.Printf("📲 FCM push: %d success, %d failure", resp.SuccessCount, resp.FailureCount)
	return invalid, nil
}
