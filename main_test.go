package main

import (
	"testing"

	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FullCoverage(t *testing.T) {
	t.Setenv("ENV", "development")
	isTest = true
	defer func() { isTest = false }()

	var capturedOpts server.Options

	// intercept options
	startServer = func(opts server.Options) {
		capturedOpts = opts
	}
	defer func() { startServer = server.Start }()

	cmd := rootCmd()
	cmd.SetArgs([]string{"serve"})
	require.NoError(t, cmd.Execute())

	assert.False(t, capturedOpts.JobsEnabled)
	capturedOpts.JobsHandler()
	capturedOpts.MigrationHandler()
	capturedOpts.WebServerPreHandler(gin.New())
}

func TestMigrateCommandDisablesWebServer(t *testing.T) {
	t.Setenv("ENV", "development")
	isTest = true
	defer func() { isTest = false }()

	var capturedOpts server.Options
	startServer = func(opts server.Options) {
		capturedOpts = opts
	}
	defer func() { startServer = server.Start }()

	cmd := rootCmd()
	cmd.SetArgs([]string{"migrate"})
	require.NoError(t, cmd.Execute())
	assert.False(t, capturedOpts.WebServerEnabled)
}

func TestContainsWildcard(t *testing.T) {
	assert.True(t, containsWildcard([]string{"https://a.example", "*"}))
	assert.False(t, containsWildcard([]string{"https://a.example"}))
}
