// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type BridgeMetrics struct {
	receivedMessageCount *prometheus.CounterVec
	rejectedMessageCount *prometheus.CounterVec
	receiveLatencyMS     *prometheus.GaugeVec
	outboundWrapCount    *prometheus.CounterVec
}

func NewBridgeMetrics(registerer prometheus.Registerer) *BridgeMetrics {
	m := BridgeMetrics{
		receivedMessageCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "received_message_count",
				Help: "Number of inbound messages executed successfully",
			},
			[]string{"source_chain_selector", "action"},
		),
		rejectedMessageCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rejected_message_count",
				Help: "Number of inbound messages rejected",
			},
			[]string{"failure_reason"},
		),
		receiveLatencyMS: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "receive_latency_ms",
				Help: "Latency of executing an inbound message in milliseconds",
			},
			[]string{"source_chain_selector", "action"},
		),
		outboundWrapCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outbound_wrap_count",
				Help: "Number of wrap messages handed to the relay",
			},
			[]string{"destination_chain_selector"},
		),
	}

	registerer.MustRegister(m.receivedMessageCount)
	registerer.MustRegister(m.rejectedMessageCount)
	registerer.MustRegister(m.receiveLatencyMS)
	registerer.MustRegister(m.outboundWrapCount)

	return &m
}

// Received records a successful inbound message
func (m *BridgeMetrics) Received(sourceChain uint64, action string, elapsed time.Duration) {
	chain := strconv.FormatUint(sourceChain, 10)
	m.receivedMessageCount.WithLabelValues(chain, action).Inc()
	m.receiveLatencyMS.WithLabelValues(chain, action).Set(float64(elapsed.Milliseconds()))
}

// Rejected records an inbound message that failed with reason. The source
// chain of a rejected message is unauthenticated, so it is not a label.
func (m *BridgeMetrics) Rejected(reason string) {
	m.rejectedMessageCount.WithLabelValues(reason).Inc()
}

// Wrapped records an outbound wrap message
func (m *BridgeMetrics) Wrapped(destinationChain uint64) {
	m.outboundWrapCount.WithLabelValues(strconv.FormatUint(destinationChain, 10)).Inc()
}
