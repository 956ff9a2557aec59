package loadbalance

import (
	"fmt"
	"math/rand"

	"github.com/hearthy-oss/hearthproxy/registry"
)

// WeightedRandomBalancer selects listeners probabilistically based on their weight.
// A listener with weight 10 gets roughly 2x the traffic of one with weight 5.
//
// Best for: heterogeneous listeners (e.g., some proxy hosts have more CPU/memory).
//
// Algorithm:
//  1. Sum all weights → totalWeight
//  2. Generate random number r in [0, totalWeight)
//  3. Subtract each instance's weight from r until r < 0
//  4. The instance that makes r negative is selected
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []registry.ListenerInstance) (*registry.ListenerInstance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("no instances available")
	}

	totalWeight := 0
	for _, v := range instances {
		totalWeight += v.Weight
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("no positive weight among %d instances", len(instances))
	}

	r := rand.Intn(totalWeight)
	for _, v := range instances {
		r -= v.Weight
		if r < 0 {
			return &v, nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
