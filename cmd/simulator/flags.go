package main

import (
	"github.com/urfave/cli/v2"
)

var (
	slotCountFlag = &cli.Uint64Flag{
		Name:  "slots",
		Usage: "Number of slots to simulate",
		Value: 16,
	}
	numValidatorsFlag = &cli.Uint64Flag{
		Name:  "validators",
		Usage: "Number of simulated validators",
		Value: 100,
	}
	validatorWeightFlag = &cli.Uint64Flag{
		Name:  "validator-weight",
		Usage: "Static weight assigned to every validator",
		Value: 1,
	}
	voteExpiryFlag = &cli.Uint64Flag{
		Name:  "vote-expiry-slots",
		Usage: "Head votes older than this many slots carry no fork choice weight",
		Value: 5,
	}
	finalityWindowFlag = &cli.Uint64Flag{
		Name:  "finality-window",
		Usage: "Maximum source to target slot distance of a justification link",
		Value: 3,
	}
	offlineValidatorsFlag = &cli.Int64SliceFlag{
		Name:  "offline-validators",
		Usage: "Validator indices that never attest",
	}
	equivocatorsFlag = &cli.Int64SliceFlag{
		Name:  "equivocating-validators",
		Usage: "Validator indices that emit conflicting attestations every slot",
	}
	treeDotFileFlag = &cli.StringFlag{
		Name:  "tree-dot-file",
		Usage: "Write a Graphviz rendering of the final block tree to this path",
	}
)
