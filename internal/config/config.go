package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	CameraIndex         int
	FrameWidth          int
	FrameHeight         int
	ModelPath           string
	ModelConfigPath     string
	ConfidenceThreshold float64
	AnimalClasses       []string // labels that trigger annotation + upload
	UploadURL           string
	CooldownSeconds     int
	SnapshotDirectory   string
	DatabasePath        string
	LogDirectory        string
	LivePort            int    // port for the live-view server, 0 disables it
	MQTTBroker          string // empty = MQTT notifications disabled
	MQTTTopic           string
	MQTTClientID        string
}

func Load() *Config {
	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	return &Config{
		CameraIndex:         getEnvAsInt("CAMERA_INDEX", 0),
		FrameWidth:          getEnvAsInt("FRAME_WIDTH", 640),
		FrameHeight:         getEnvAsInt("FRAME_HEIGHT", 480),
		ModelPath:           getEnv("MODEL_PATH", filepath.Join(".", "models", "frozen_inference_graph.pb")),
		ModelConfigPath:     getEnv("MODEL_CONFIG_PATH", filepath.Join(".", "models", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		AnimalClasses:       getEnvAsList("ANIMAL_CLASSES", "dog,cat,bird,cow,sheep,horse"),
		UploadURL:           getEnv("UPLOAD_URL", "http://172.16.3.167:8000/animal/test-gemini/"),
		CooldownSeconds:     getEnvAsInt("COOLDOWN_SECONDS", 5),
		SnapshotDirectory:   getEnv("SNAPSHOT_DIR", filepath.Join(".", "snapshots")),
		DatabasePath:        getEnv("DB_PATH", filepath.Join(".", "data", "events.db")),
		LogDirectory:        getEnv("LOG_DIR", filepath.Join(".", "logs")),
		LivePort:            getEnvAsInt("LIVE_PORT", 8080),
		MQTTBroker:          getEnv("MQTT_BROKER", ""),
		MQTTTopic:           getEnv("MQTT_TOPIC", "wildwatch/detections"),
		MQTTClientID:        getEnv("MQTT_CLIENT_ID", "wildwatch-watcher"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
