package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gridcap/renew247/core/metrics"
	"github.com/gridcap/renew247/infra/logger"
)

// InfluxSink writes planner results to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSizing writes a capacity sizing result as a line protocol point.
func (s *InfluxSink) RecordSizing(ev coremetrics.SizingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("storage_sizing").
		AddTag("run_id", ev.RunID).
		AddTag("strategy", ev.Strategy).
		AddTag("battery_model", ev.Model).
		AddTag("determined", strconv.FormatBool(ev.Determined)).
		AddField("capacity_mwh", round3(ev.CapacityMWh)).
		AddField("trials", ev.Trials).
		AddField("samples", ev.Samples).
		SetTime(ev.Time)
	if ev.Applied {
		p.AddField("unmet_mwh", round3(ev.UnmetMWh))
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordReallocation writes a workload shift result as a line protocol point.
func (s *InfluxSink) RecordReallocation(ev coremetrics.ReallocationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("workload_shift").
		AddTag("run_id", ev.RunID).
		AddTag("objective", ev.Objective).
		AddTag("strategy", ev.Strategy).
		AddField("moved_mwh", round3(ev.MovedMWh)).
		AddField("target_mwh", round3(ev.TargetMWh)).
		AddField("windows", ev.Windows).
		AddField("samples", ev.Samples).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
