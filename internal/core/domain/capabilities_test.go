package domain_test

import (
	"testing"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveCapabilities(t *testing.T) {
	member := &domain.UserArea{UserID: "u1", AreaID: "a1", Role: domain.AreaRoleMember}
	manager := &domain.UserArea{UserID: "u1", AreaID: "a1", Role: domain.AreaRoleManager}
	areaAdmin := &domain.UserArea{UserID: "u1", AreaID: "a1", Role: domain.AreaRoleAdmin}
	unknown := &domain.UserArea{UserID: "u1", AreaID: "a1", Role: "REMOVED"}

	tests := []struct {
		name       string
		caller     domain.Caller
		membership *domain.UserArea
		want       domain.Capabilities
	}{
		{"global admin without membership", domain.Caller{UserID: "u1", IsAdmin: true}, nil, domain.Capabilities{IsAdmin: true, IsManager: true, IsMember: true}},
		{"global admin with member role", domain.Caller{UserID: "u1", IsAdmin: true}, member, domain.Capabilities{IsAdmin: true, IsManager: true, IsMember: true}},
		{"no membership", domain.Caller{UserID: "u1"}, nil, domain.Capabilities{}},
		{"member", domain.Caller{UserID: "u1"}, member, domain.Capabilities{IsMember: true}},
		{"manager", domain.Caller{UserID: "u1"}, manager, domain.Capabilities{IsManager: true, IsMember: true}},
		{"area admin role", domain.Caller{UserID: "u1"}, areaAdmin, domain.Capabilities{IsManager: true, IsMember: true}},
		{"unknown role", domain.Caller{UserID: "u1"}, unknown, domain.Capabilities{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveCapabilities(tt.caller, tt.membership)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAreaScope(t *testing.T) {
	all := domain.AreaScope{All: true}
	assert.True(t, all.Contains("anything"))
	assert.False(t, all.IsEmpty())

	some := domain.AreaScope{AreaIDs: []string{"a1", "a2"}}
	assert.True(t, some.Contains("a2"))
	assert.False(t, some.Contains("a3"))

	assert.True(t, domain.AreaScope{}.IsEmpty())
}
