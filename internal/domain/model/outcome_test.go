package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

func TestOutcome_Workspace(t *testing.T) {
	var o model.Outcome = model.Success{WorkspaceName: "A"}
	assert.Equal(t, "A", o.Workspace())

	o = model.Failure{WorkspaceName: "B", Message: "invalid_auth"}
	assert.Equal(t, "B", o.Workspace())
}

func TestAllSucceeded(t *testing.T) {
	assert.True(t, model.AllSucceeded(nil))
	assert.True(t, model.AllSucceeded([]model.Outcome{
		model.Success{WorkspaceName: "A"},
		model.Success{WorkspaceName: "B"},
	}))
	assert.False(t, model.AllSucceeded([]model.Outcome{
		model.Success{WorkspaceName: "A"},
		model.Failure{WorkspaceName: "B", Message: "x"},
	}))
}

func TestCountFailures(t *testing.T) {
	outcomes := []model.Outcome{
		model.Failure{WorkspaceName: "A", Message: "x"},
		model.Success{WorkspaceName: "B"},
		model.Failure{WorkspaceName: "C", Message: "y"},
	}
	assert.Equal(t, 2, model.CountFailures(outcomes))
	assert.Zero(t, model.CountFailures(nil))
}

func TestRemoteProfile_AbsentFields(t *testing.T) {
	var p model.RemoteProfile
	assert.Empty(t, p.Text())
	assert.Empty(t, p.Emoji())

	text, emoji := "Lunch", ":hamburger:"
	p = model.RemoteProfile{StatusText: &text, StatusEmoji: &emoji}
	assert.Equal(t, "Lunch", p.Text())
	assert.Equal(t, ":hamburger:", p.Emoji())
}
