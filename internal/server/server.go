// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts, and resources that depend on them.
// No business logic lives here, only wiring.
package server

import (
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/redairforce/wikijs-mcp/internal/config"
	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/prompts"
	"github.com/redairforce/wikijs-mcp/internal/resources"
	"github.com/redairforce/wikijs-mcp/internal/tools"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the sync journal's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if the journal failed
// to initialize.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Printf("WARNING: config load failed, using defaults: %v", err)
		cfg = &config.Settings{}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, noop, fmt.Errorf("resolving working directory: %w", err)
	}

	detector, err := wikicontext.NewDetector(cwd, cfg.ExcludeDirs)
	if err != nil {
		return nil, noop, fmt.Errorf("creating context detector: %w", err)
	}

	manager := wikicontext.NewManager(detector, wikicontext.NewFileStore())

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"wikijs-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Open the sync journal ---
	//
	// The journal is an independent subsystem: if it fails to open, the
	// context tools keep working. We log a warning and skip history
	// registration. Every mutating tool is nil-safe around it.

	cleanup := noop
	var jnl *journal.Store
	if cfg.DisableJournal {
		log.Printf("sync journal disabled by configuration")
	} else {
		jcfg := journal.DefaultConfig()
		if cfg.JournalPath != "" {
			jcfg.Path = cfg.JournalPath
		}
		store, jerr := journal.New(jcfg)
		if jerr != nil {
			log.Printf("WARNING: sync journal disabled: %v", jerr)
		} else {
			jnl = store
			cleanup = func() {
				if err := jnl.Close(); err != nil {
					log.Printf("WARNING: sync journal close: %v", err)
				}
			}
		}
	}

	// --- Register context tools ---

	detectTool := tools.NewDetectTool(manager)
	s.AddTool(detectTool.Definition(), detectTool.Handle)

	initRepoTool := tools.NewInitRepositoryTool(manager, jnl)
	s.AddTool(initRepoTool.Definition(), initRepoTool.Handle)

	initWorkspaceTool := tools.NewInitWorkspaceTool(manager, jnl)
	s.AddTool(initWorkspaceTool.Definition(), initWorkspaceTool.Handle)

	setModeTool := tools.NewSetModeTool(manager)
	s.AddTool(setModeTool.Definition(), setModeTool.Handle)

	getContextTool := tools.NewGetContextTool(manager)
	s.AddTool(getContextTool.Definition(), getContextTool.Handle)

	addMappingTool := tools.NewAddMappingTool(manager, jnl)
	s.AddTool(addMappingTool.Definition(), addMappingTool.Handle)

	hasChangedTool := tools.NewHasChangedTool(manager)
	s.AddTool(hasChangedTool.Definition(), hasChangedTool.Handle)

	addLinkTool := tools.NewAddLinkTool(manager, jnl)
	s.AddTool(addLinkTool.Definition(), addLinkTool.Handle)

	// History reads straight from the journal, so it is only offered
	// when the journal opened.
	if jnl != nil {
		historyTool := tools.NewSyncHistoryTool(jnl)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Register prompts ---

	setupPrompt := prompts.NewSetupPrompt()
	s.AddPrompt(setupPrompt.Definition(), setupPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(manager)
	s.AddResource(resourceHandler.ContextResource(), resourceHandler.HandleContext)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the journal
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the documentation context tools effectively.
func serverInstructions() string {
	return `You have access to wikijs-mcp, a documentation context MCP server
for projects whose documentation lives in Wiki.js.

## WHAT THIS SERVER DOES

wikijs-mcp remembers which local files map to which Wiki.js pages, at
three levels of granularity:
- repository: one repo, its wiki space, file-to-page mappings
- workspace: several repos coordinated under one root
- architectural: cross-repo relationships and system diagrams

The state is persisted next to the code (.wikijs-state.json at each repo
root, .wikijs-workspace.json at the workspace root), so it survives
between sessions and travels with the checkout.

## CRITICAL: How Tools Work

These are STATE tools, not content tools. They never talk to Wiki.js and
never write documentation. YOU write the docs and push them to Wiki.js;
the tools record what you synced so future sessions know where things
live. Never invent page ids: only record ids that Wiki.js actually
assigned.

## GETTING STARTED (do this once per project)

1. Call wiki_detect_context to see what the filesystem looks like:
   git root, workspace root, monorepo layout, discovered repos, and a
   suggested context level.
2. Follow the suggestion:
   - single repo: call wiki_init_repository (optionally with wiki_space)
   - multiple repos: call wiki_init_workspace, then wiki_init_repository
     inside each repo that needs file-level tracking
3. Confirm with wiki_get_context that the context looks right.

## EVERYDAY WORKFLOW

After you create or update a Wiki.js page for a file:
- Call wiki_add_file_mapping with file_path and the page_id Wiki.js
  assigned. The tool hashes the file so staleness can be detected later.

Before you trust existing documentation:
- Call wiki_has_file_changed with the file_path. "yes" means the file
  was edited since the last sync and its wiki page is probably stale.
- Untracked files always report "yes"; offer to map them.

When documenting how repos relate (workspace level):
- Call wiki_add_architectural_link with the two endpoints and a
  relationship verb (for example "depends_on", "publishes_to",
  "authenticates_via"). Add wiki_page_id when a diagram page exists.

## CONTEXT LEVELS

The active level decides what wiki_get_context returns:
- repository: file mappings, recent syncs, key pages for one repo
- workspace: the repo inventory with key pages per repo
- architectural: cross-repo links and network diagrams

Switch levels with wiki_set_context_mode, or pass mode to
wiki_get_context for a one-shot view without switching. When you pass
request_text instead, the server infers the level from the wording
(mentions of architecture or cross-repo concerns select the wider
views). A placeholder response means nothing is initialized at that
level yet; run the matching init tool.

## SYNC HISTORY

When the journal is available, wiki_sync_history lists recent context
activity (inits, mappings, links) newest first. Use it to answer "what
changed since last session" before re-reading state files.

## RESOURCE

The resource wikijs://context/current mirrors wiki_get_context for the
active level as raw JSON. Prefer it when you need the data structurally
instead of as markdown.

## Important Rules

- ALWAYS detect before initializing: wiki_detect_context first
- Initialize once; re-running wiki_init_repository resets mappings
- Record a mapping after EVERY page you create or update in Wiki.js
- Check wiki_has_file_changed before claiming docs are up to date
- Architectural links need a workspace context; initialize it first
- Context responses end with an estimated token size; if it grows
  large, prefer the repository level over workspace for routine work`
}
