package world

import (
	"fmt"
	"math"

	"voxelgen/internal/config"
)

// BiomeType selects the terrain rule applied to a column.
type BiomeType uint8

const (
	BiomeMountains BiomeType = iota
	BiomeFlat
	BiomeQuarry
)

func (b BiomeType) String() string {
	switch b {
	case BiomeMountains:
		return config.BiomeMountains
	case BiomeFlat:
		return config.BiomeFlat
	case BiomeQuarry:
		return config.BiomeQuarry
	default:
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
}

// ParseBiomeType maps a configured biome name to its type.
func ParseBiomeType(name string) (BiomeType, error) {
	switch name {
	case config.BiomeMountains:
		return BiomeMountains, nil
	case config.BiomeFlat:
		return BiomeFlat, nil
	case config.BiomeQuarry:
		return BiomeQuarry, nil
	}
	return 0, &ConfigError{Field: "biome.type", Value: name, Err: fmt.Errorf("unknown biome")}
}

// BiomeSlot is one weighted entry of the biome ring.
type BiomeSlot struct {
	Type   BiomeType
	Weight float64
}

// BiomeStrength pairs a biome with how strongly it applies, in [0, 1].
type BiomeStrength struct {
	Type     BiomeType
	Strength float64
}

// BiomeClassifier treats its slots as a circular list and maps a value in [0, 1)
// onto a slot plus its two ring neighbours.
type BiomeClassifier struct {
	slots          []BiomeSlot
	total          float64
	blendThreshold float64
}

// BiomeSlotsFromConfig resolves configured slot names into a ring.
func BiomeSlotsFromConfig(cfg []config.BiomeSlot) ([]BiomeSlot, error) {
	slots := make([]BiomeSlot, 0, len(cfg))
	for _, s := range cfg {
		bt, err := ParseBiomeType(s.Type)
		if err != nil {
			return nil, err
		}
		slots = append(slots, BiomeSlot{Type: bt, Weight: s.Weight})
	}
	return slots, nil
}

// NewBiomeClassifier validates the slots and precomputes the weight total.
func NewBiomeClassifier(slots []BiomeSlot, blendThreshold float64) (*BiomeClassifier, error) {
	if len(slots) == 0 {
		return nil, &ConfigError{Field: "biome.slots", Value: 0, Err: fmt.Errorf("empty biome ring")}
	}
	total := 0.0
	for i, s := range slots {
		if !(s.Weight > 0) || math.IsInf(s.Weight, 0) {
			return nil, &ConfigError{Field: fmt.Sprintf("biome.slots[%d].weight", i), Value: s.Weight, Err: fmt.Errorf("weight must be positive")}
		}
		total += s.Weight
	}
	return &BiomeClassifier{
		slots:          append([]BiomeSlot(nil), slots...),
		total:          total,
		blendThreshold: blendThreshold,
	}, nil
}

// Classify returns (matched, next, previous) for r in [0, 1).
//
// The matched strength is 1 at the centre of its weight interval and falls
// linearly to 0 at the edges. Below the blend threshold the two ring
// neighbours each receive (1-strength)/2; otherwise they get 0.
// A scaled value past the total (float rounding) lands in the last slot.
// A value that matches nothing (NaN) panics with ErrBiomeLookup.
func (bc *BiomeClassifier) Classify(r float64) [3]BiomeStrength {
	v := r * bc.total
	n := len(bc.slots)

	prevSum := 0.0
	sum := 0.0
	for k := 0; k < n; k++ {
		sum += bc.slots[k].Weight
		last := k == n-1
		if v <= sum || (last && v > sum) {
			return bc.strengths(k, v, prevSum, sum)
		}
		prevSum = sum
	}
	panic(fmt.Errorf("%w: value %v (total %v)", ErrBiomeLookup, r, bc.total))
}

func (bc *BiomeClassifier) strengths(k int, v, prevSum, sum float64) [3]BiomeStrength {
	n := len(bc.slots)
	prev := (k - 1 + n) % n
	next := (k + 1) % n

	half := (sum - prevSum) / 2
	strength := 1 - math.Abs((v-prevSum)-half)/half
	if strength < 0 {
		strength = 0
	}

	neighbour := 0.0
	if strength < bc.blendThreshold {
		neighbour = (1 - strength) / 2
	}

	return [3]BiomeStrength{
		{Type: bc.slots[k].Type, Strength: strength},
		{Type: bc.slots[next].Type, Strength: neighbour},
		{Type: bc.slots[prev].Type, Strength: neighbour},
	}
}
