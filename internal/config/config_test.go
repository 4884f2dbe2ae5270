package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "event-catalogs", cfg.KafkaSourceTopic)
	assert.Equal(t, "impact-yearsets", cfg.KafkaSinkTopic)
	assert.Equal(t, "impact-yearset-service", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, 1000, cfg.DefaultTargetYears)
	assert.True(t, cfg.ApplyCorrection)
	assert.Equal(t, 256, cfg.RecordCacheSize)
	assert.Equal(t, 100000, cfg.MaxCatalogEvents)
	assert.Equal(t, 100000, cfg.MaxTargetYears)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("YEARSET_KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("YEARSET_KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("YEARSET_KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("YEARSET_KAFKA_GROUP_ID", "custom-group")
	t.Setenv("YEARSET_HTTP_ADDR", ":9090")
	t.Setenv("YEARSET_LOG_LEVEL", "debug")
	t.Setenv("YEARSET_LOG_FORMAT", "text")
	t.Setenv("YEARSET_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("YEARSET_BATCH_SIZE", "100")
	t.Setenv("YEARSET_BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("YEARSET_DEFAULT_TARGET_YEARS", "500")
	t.Setenv("YEARSET_APPLY_CORRECTION", "false")
	t.Setenv("YEARSET_RECORD_CACHE_SIZE", "64")
	t.Setenv("YEARSET_MAX_CATALOG_EVENTS", "5000")
	t.Setenv("YEARSET_MAX_TARGET_YEARS", "50000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 500, cfg.DefaultTargetYears)
	assert.False(t, cfg.ApplyCorrection)
	assert.Equal(t, 64, cfg.RecordCacheSize)
	assert.Equal(t, 5000, cfg.MaxCatalogEvents)
	assert.Equal(t, 50000, cfg.MaxTargetYears)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yearset.yaml")
	data := []byte("kafka_source_topic: file-source\nkafka_sink_topic: file-sink\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("YEARSET_CONFIG", path)
	t.Setenv("YEARSET_KAFKA_SINK_TOPIC", "env-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "env-sink", cfg.KafkaSinkTopic)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("YEARSET_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("YEARSET_SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown_timeout")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("YEARSET_SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown_timeout")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("YEARSET_BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("YEARSET_BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("YEARSET_BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_flush_interval")
}

func TestLoad_InvalidDefaultTargetYears(t *testing.T) {
	t.Setenv("YEARSET_DEFAULT_TARGET_YEARS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_target_years")
}

func TestLoad_MaxTargetYearsBelowDefault(t *testing.T) {
	t.Setenv("YEARSET_MAX_TARGET_YEARS", "10")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_target_years")
}

func TestLoad_InvalidRecordCacheSize(t *testing.T) {
	t.Setenv("YEARSET_RECORD_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record_cache_size")
}

func TestLoad_InvalidMaxCatalogEvents(t *testing.T) {
	t.Setenv("YEARSET_MAX_CATALOG_EVENTS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_catalog_events")
}
