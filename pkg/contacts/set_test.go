package contacts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/contactmerge/pkg/contacts"
)

func TestSet(t *testing.T) {
	s := contacts.NewSet(" a", "b", "", "a", "c ")
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains(""))
	assert.Equal(t, "a/b/c", s.Join("/"))
}

func TestSetUnion(t *testing.T) {
	a := contacts.NewSet("x", "y")
	b := contacts.NewSet("z", "x")

	u := a.Union(b)
	assert.Equal(t, []string{"x", "y", "z"}, u.Values())
	assert.Equal(t, []string{"x", "y"}, a.Values())
	assert.Equal(t, []string{"x", "y"}, a.Union(contacts.Set{}).Values())
}

func TestSetOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b contacts.Set
		want bool
	}{
		{"shared member", contacts.NewSet("a", "b"), contacts.NewSet("b"), true},
		{"disjoint", contacts.NewSet("a"), contacts.NewSet("b"), false},
		{"both empty", contacts.Set{}, contacts.Set{}, false},
		{"one empty", contacts.NewSet("a"), contacts.Set{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}
