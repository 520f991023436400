package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentTransitions(t *testing.T) {
	cases := []struct {
		from, to EnrollmentStatus
		ok       bool
	}{
		{EnrollPending, EnrollActive, true},
		{EnrollPending, EnrollCancelled, true},
		{EnrollPending, EnrollCompleted, false},
		{EnrollActive, EnrollCompleted, true},
		{EnrollActive, EnrollCancelled, true},
		{EnrollActive, EnrollPending, false},
		{EnrollCompleted, EnrollActive, false},
		{EnrollCancelled, EnrollActive, false},
	}
	for _, c := range cases {
		e := Enrollment{Status: c.from}
		assert.Equal(t, c.ok, e.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}
