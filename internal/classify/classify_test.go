package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/civic-service/internal/domain"
)

func TestPriority(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		issueType string
		expected  domain.Priority
	}{
		{"GasLeak", "Gas", "Gas Leak", domain.PriorityCritical},
		{"GasNoGas", "Gas", "No Gas Supply", domain.PriorityHigh},
		{"GasSupply", "Gas", "Low supply pressure", domain.PriorityHigh},
		{"GasOther", "Gas", "Billing dispute", domain.PriorityMedium},
		{"ElectricSpark", "Electricity", "Sparking pole", domain.PriorityCritical},
		{"ElectricFire", "Electricity", "Transformer fire", domain.PriorityCritical},
		{"ElectricHazard", "Electricity", "Exposed wire hazard", domain.PriorityCritical},
		{"ElectricOutage", "Electricity", "Power outage", domain.PriorityHigh},
		{"ElectricCut", "Electricity", "Frequent cuts", domain.PriorityHigh},
		{"ElectricMeter", "Electricity", "Faulty meter", domain.PriorityMedium},
		{"ElectricOther", "Electricity", "Street pole tilt", domain.PriorityLow},
		{"WaterBurst", "Water", "Burst pipeline", domain.PriorityHigh},
		{"WaterSewage", "Water", "Sewage overflow", domain.PriorityHigh},
		{"WaterBlock", "Water", "Blocked drain", domain.PriorityHigh},
		{"WaterNoWater", "Water", "No water since morning", domain.PriorityMedium},
		{"WaterOther", "Water", "Taste complaint", domain.PriorityLow},
		{"MunicipalGarbage", "Municipal Services", "Garbage not collected", domain.PriorityMedium},
		{"WasteLight", "Waste Management", "Street light broken", domain.PriorityMedium},
		{"MunicipalOther", "Municipal Services", "Park maintenance", domain.PriorityLow},
		{"UnknownCategory", "Parks", "Tree fallen", domain.PriorityLow},
		{"EmptyInputs", "", "", domain.PriorityLow},
		{"CaseInsensitive", "GAS", "gas LEAK near school", domain.PriorityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Priority(tt.category, tt.issueType))
		})
	}
}

func TestPriorityDeterministic(t *testing.T) {
	first := Priority("Electricity", "Power outage in Ward 3")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Priority("Electricity", "Power outage in Ward 3"))
	}
}

func TestPriorityKeywordOrder(t *testing.T) {
	// "leak" outranks "supply" inside the gas table even when both match.
	assert.Equal(t, domain.PriorityCritical, Priority("Gas", "supply line leak"))
}
