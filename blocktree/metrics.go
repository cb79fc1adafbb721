package blocktree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blocktree_node_count",
			Help: "The number of blocks in the tree.",
		},
	)
	insertedBlockCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blocktree_block_inserted_count",
			Help: "The number of blocks successfully inserted into the tree.",
		},
	)
)
