package main

import (
	"testing"

	"blog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectRepo(t *testing.T) {
	repo, err := injectRepo(config.StoreDriverPostgres)
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = injectRepo(config.StoreDriverMemory)
	assert.ErrorIs(t, err, errMemoryStore)

	_, err = injectRepo("sqlite")
	assert.Error(t, err)
}
