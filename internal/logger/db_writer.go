package logger

import (
	"context"
	"fmt"
	"time"

	"closetshare/internal/config"
	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from zap to the worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	UserID  string
	Caller  string
}

// logDocument is the shape persisted to the "logs" collection
type logDocument struct {
	Message   string    `bson:"message"`
	Level     string    `bson:"level"`
	Caller    string    `bson:"caller,omitempty"`
	UserID    string    `bson:"user_id,omitempty"`
	AppId     string    `bson:"app_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our zap core for every entry
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop instead of blocking the request path
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := logDocument{
			Message:   entry.Message,
			Level:     entry.Level.String(),
			Caller:    entry.Caller,
			UserID:    entry.UserID,
			AppId:     w.appId,
			CreatedAt: time.Now().UTC(),
		}

		// Insert errors are swallowed to keep the app running
		w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}
