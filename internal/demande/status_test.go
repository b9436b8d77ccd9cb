package demande_test

import (
	"testing"

	"github.com/STS-Engineer/rh-app-backend/internal/demande"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name            string
		approve1        *bool
		approve2        *bool
		hasResponsable2 bool
		want            string
	}{
		{"nothing answered", nil, nil, true, demande.StatusPending},
		{"nothing answered no responsable2", nil, nil, false, demande.StatusPending},
		{"first refused", boolPtr(false), nil, true, demande.StatusRefused},
		{"second refused", boolPtr(true), boolPtr(false), true, demande.StatusRefused},
		{"second refused overrides first approval", boolPtr(true), boolPtr(false), true, demande.StatusRefused},
		{"both refused", boolPtr(false), boolPtr(false), true, demande.StatusRefused},
		{"both approved", boolPtr(true), boolPtr(true), true, demande.StatusApproved},
		{"first approved no responsable2", boolPtr(true), nil, false, demande.StatusApproved},
		{"first approved waiting on second", boolPtr(true), nil, true, demande.StatusPending},
		{"second approved waiting on first", nil, boolPtr(true), true, demande.StatusPending},
		{"second refused before first answered", nil, boolPtr(false), true, demande.StatusRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := demande.DeriveStatus(tt.approve1, tt.approve2, tt.hasResponsable2)
			assert.Equal(t, tt.want, got)
		})
	}
}
