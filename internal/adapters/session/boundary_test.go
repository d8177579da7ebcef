package session_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/adapters/session"
)

func TestBoundary_RequireLogin(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	b := session.NewBoundary(buf)
	b.RequireLogin("session expired, please log in again")

	assert.Equal(t, []string{"session expired, please log in again"}, b.Reasons())

	g := goldie.New(t)
	g.Assert(t, "require_login", buf.Bytes())
}
