package describe

import (
	"github.com/montanaflynn/stats"
)

// weightPrecision is the number of decimals kept when rounding weight
// statistics. The hardware's weight resolution makes finer precision
// meaningless.
const weightPrecision = 4

// weightStats computes the rounded mean and population standard deviation
// of a weight list. An empty list yields zero statistics; a group with no
// synapses has no weights to summarize.
func weightStats(weights []float64) (mean, std float64, err error) {
	if len(weights) == 0 {
		return 0, 0, nil
	}

	data := stats.Float64Data(weights)

	mean, err = data.Mean()
	if err != nil {
		return 0, 0, err
	}
	std, err = data.StandardDeviationPopulation()
	if err != nil {
		return 0, 0, err
	}

	mean, err = stats.Round(mean, weightPrecision)
	if err != nil {
		return 0, 0, err
	}
	std, err = stats.Round(std, weightPrecision)
	if err != nil {
		return 0, 0, err
	}

	return mean, std, nil
}
