package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.size))
	}
}

func TestStepResultFailed(t *testing.T) {
	assert.True(t, StepResult{Status: StatusFailed}.Failed())
	assert.False(t, StepResult{Status: StatusSuccess}.Failed())
	assert.False(t, StepResult{Status: StatusWarning}.Failed())
	assert.False(t, StepResult{Status: StatusSkipped}.Failed())
}

func TestPackageSpecString(t *testing.T) {
	spec := PackageSpec{Name: "numpy", Constraint: "==1.24.0", Raw: "numpy==1.24.0"}
	assert.Equal(t, "numpy==1.24.0", spec.String())
}
