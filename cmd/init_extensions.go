/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs a repository runs. The service is opened once and shared
// across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from the bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that change stored documents.
var authorRequiredCommands = map[string]bool{
	"put":    true,
	"rm":     true,
	"import": true,
}

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Most commands need the repository, but some must work without it:
//
//  1. Bootstrap commands (init, guide, config) set up or explain docq before
//     a repository exists. "docq guide" shouldn't fail just because you
//     haven't run "docq init" yet.
//
//  2. Extension-declared storeless commands manage their own service, or need
//     none. "docq parse" checks a query anywhere; "docq query --file" queries
//     documents that are never stored.
//
// A new core bootstrap command goes here. Anything else implements
// extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the document service and injects it into extensions.
//
// sync.Once guarantees one service per process: it holds the database handle
// and the executor pool, and every extension must see the same one.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := document.New(DB(), Dir())
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Dir())

		extContext = extension.NewContext(svc, svc.Config())
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
