package ffg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("prefix", "ffg")

	justifiedSlotNumber = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffg_latest_justified_slot",
			Help: "The slot of the latest justified checkpoint.",
		},
	)
	finalizedSlotNumber = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffg_latest_finalized_slot",
			Help: "The slot of the latest finalized checkpoint.",
		},
	)
	processedAttestationCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ffg_attestation_processed_count",
			Help: "The number of attestations tallied into justification links.",
		},
	)
	rejectedAttestationCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ffg_attestation_rejected_count",
			Help: "The number of attestations rejected during validation.",
		},
	)
)
