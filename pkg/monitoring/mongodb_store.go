package monitoring

import (
	"context"
	"log"
	"strconv"
	"time"

	"omnily-go-admin/mongodb"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	logDatabase   = "omnily_log_db"
	logCollection = "logs"
)

// HTTPMetric is one request log entry.
type HTTPMetric struct {
	Timestamp  time.Time `bson:"timestamp"`
	Method     string    `bson:"method"`
	Endpoint   string    `bson:"endpoint"`
	StatusCode int       `bson:"status_code"`
	Duration   float64   `bson:"duration"`
	UserAgent  string    `bson:"user_agent,omitempty"`
	ClientIP   string    `bson:"client_ip,omitempty"`
	UserID     string    `bson:"user_id,omitempty"`
}

// AuditEvent records a back-office action against an organization: customer
// writes, campaign launches, report exports.
type AuditEvent struct {
	Timestamp      time.Time `bson:"timestamp"`
	Action         string    `bson:"action"`
	OrganizationID string    `bson:"organization_id"`
	SubjectID      string    `bson:"subject_id,omitempty"`
	UserID         string    `bson:"user_id,omitempty"`
}

// SaveHTTPMetric writes a request log entry to MongoDB. Fire-and-forget so it
// never slows down the response.
func SaveHTTPMetric(c *gin.Context, duration float64) {
	metric := HTTPMetric{
		Timestamp:  time.Now(),
		Method:     c.Request.Method,
		Endpoint:   c.FullPath(),
		StatusCode: c.Writer.Status(),
		Duration:   duration,
		UserAgent:  c.GetHeader("User-Agent"),
		ClientIP:   c.ClientIP(),
	}

	if userInfo, exists := c.Get("userInfo"); exists {
		if user, ok := userInfo.(map[string]interface{}); ok {
			if id, exists := user["id"]; exists {
				if num, ok := id.(float64); ok {
					metric.UserID = strconv.Itoa(int(num))
				}
			}
		}
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("failed to save request log: %v", r)
			}
		}()

		collection := mongodb.GetCollection(logDatabase, logCollection)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := collection.InsertOne(ctx, metric); err != nil {
			log.Printf("failed to save request log to MongoDB: %v", err)
		}
	}()
}

// SaveAuditEvent persists an audit trail entry, asynchronously.
func SaveAuditEvent(action, organizationID, subjectID, userID string) {
	event := AuditEvent{
		Timestamp:      time.Now(),
		Action:         action,
		OrganizationID: organizationID,
		SubjectID:      subjectID,
		UserID:         userID,
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("failed to save audit event: %v", r)
			}
		}()

		collection := mongodb.GetCollection(logDatabase, logCollection)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := collection.InsertOne(ctx, event); err != nil {
			log.Printf("failed to save audit event to MongoDB: %v", err)
		}
	}()
}

// GetMonitoringStats aggregates request and audit counts over a time range
// ("1h", "24h" or "7d").
func GetMonitoringStats(timeRange string) (map[string]interface{}, error) {
	collection := mongodb.GetCollection(logDatabase, logCollection)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	var startTime time.Time
	switch timeRange {
	case "1h":
		startTime = now.Add(-time.Hour)
	case "24h":
		startTime = now.Add(-24 * time.Hour)
	case "7d":
		startTime = now.Add(-7 * 24 * time.Hour)
	default:
		startTime = now.Add(-time.Hour)
	}

	window := bson.M{"$gte": startTime, "$lte": now}

	httpCount, _ := collection.CountDocuments(ctx, bson.M{
		"timestamp": window,
		"method":    bson.M{"$exists": true},
	})
	auditCount, _ := collection.CountDocuments(ctx, bson.M{
		"timestamp": window,
		"action":    bson.M{"$exists": true},
	})

	return map[string]interface{}{
		"timeRange": timeRange,
		"timestamp": now,
		"stats": map[string]interface{}{
			"http_requests": httpCount,
			"audit_events":  auditCount,
		},
	}, nil
}

// GetRecentHTTPRequests returns up to limit recent request log entries.
func GetRecentHTTPRequests(limit int64) ([]HTTPMetric, error) {
	collection := mongodb.GetCollection(logDatabase, logCollection)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"method": bson.M{"$exists": true}}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var metrics []HTTPMetric
	if err = cursor.All(ctx, &metrics); err != nil {
		return nil, err
	}

	if int64(len(metrics)) > limit {
		metrics = metrics[:limit]
	}

	return metrics, nil
}
