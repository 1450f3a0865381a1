package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute_HelpSucceeds(t *testing.T) {
	assert.Equal(t, 0, execute([]string{"--help"}))
}

func TestExecute_FailureExitsNonzero(t *testing.T) {
	// restore without --folder fails before any setup or network use
	assert.Equal(t, 1, execute([]string{"restore"}))
}
