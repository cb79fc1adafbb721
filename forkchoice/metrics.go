package forkchoice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("prefix", "forkchoice")

	headSlotNumber = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rlmdghost_head_slot",
			Help: "The slot number of the current head.",
		},
	)
	headChangesCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rlmdghost_head_changed_count",
			Help: "The number of times head changes.",
		},
	)
	calledHeadCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rlmdghost_head_requested_count",
			Help: "The number of times someone called head.",
		},
	)
	staleVoteCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rlmdghost_stale_vote_count",
			Help: "The number of votes excluded from a tally for exceeding the expiry window.",
		},
	)
)
