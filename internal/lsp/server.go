// Package lsp serves scale value previews to editors over the Language
// Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/scalemix/internal/parser"
	"github.com/jsvensson/scalemix/internal/scale"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "scalemix-lsp"

type Server struct {
	handler     protocol.Handler
	docs        *DocumentStore
	version     string
	palettePath string
	log         commonlog.Logger

	mu        sync.RWMutex
	resolver  *scale.Resolver
	locations map[string]hcl.Range
}

// NewServer creates a server resolving scale values against the palette
// file at palettePath. A missing or broken palette is logged and leaves
// the server running without one; editing the palette file in the client
// reloads it.
func NewServer(version, palettePath string) *Server {
	s := &Server{
		docs:    NewDocumentStore(),
		version: version,
		log:     commonlog.GetLogger("scalemix.lsp"),
	}

	if palettePath != "" {
		if abs, err := filepath.Abs(palettePath); err == nil {
			palettePath = abs
		}
		s.palettePath = palettePath

		result, err := parser.Parse(palettePath)
		if err != nil {
			s.log.Errorf("loading palette: %s", err)
		} else {
			s.resolver = result.Resolver
			s.locations = result.Locations
			s.log.Infof("loaded %d palette entries from %s", result.Index.Len(), palettePath)
		}
	} else {
		s.log.Warning("no palette configured")
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentColor:             s.textDocumentDocumentColor,
		TextDocumentColorPresentation: s.textDocumentColorPresentation,
		TextDocumentFormatting:        s.textDocumentFormatting,
	}

	return s
}

func (s *Server) Run() error {
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Open(uri, params.TextDocument.Text)
	s.refresh(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs.Update(uri, c.Text)
		}
	}
	s.refresh(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(string(params.TextDocument.URI))
	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// refresh re-analyzes uri and publishes its diagnostics. When uri is the
// palette file itself, the palette is reloaded from the editor contents and
// every open document is re-analyzed against it.
func (s *Server) refresh(ctx *glsp.Context, uri string) {
	content, ok := s.docs.Get(uri)
	if !ok {
		return
	}

	if !s.isPalette(uri) {
		publish(ctx, protocol.DocumentUri(uri), s.analyze(uri, content).Diagnostics)
		return
	}

	diags := []protocol.Diagnostic{}
	if err := s.reload(content); err != nil {
		diags = append(diags, protocol.Diagnostic{
			Severity: &DiagError,
			Source:   strPtr(serverName),
			Message:  err.Error(),
		})
	}
	publish(ctx, protocol.DocumentUri(uri), diags)

	for _, other := range s.docs.URIs() {
		if other == uri {
			continue
		}
		if c, ok := s.docs.Get(other); ok {
			publish(ctx, protocol.DocumentUri(other), s.analyze(other, c).Diagnostics)
		}
	}
}

// reload replaces the palette with one parsed from content. The previous
// palette stays in use if content does not parse.
func (s *Server) reload(content string) error {
	result, err := parser.ParseBytes([]byte(content), s.palettePath)
	if err != nil {
		s.log.Warningf("palette not reloaded: %s", err)
		return err
	}

	s.mu.Lock()
	s.resolver = result.Resolver
	s.locations = result.Locations
	s.mu.Unlock()
	s.log.Infof("reloaded %d palette entries", result.Index.Len())
	return nil
}

func (s *Server) analyze(uri, content string) *AnalysisResult {
	s.mu.RLock()
	r := s.resolver
	s.mu.RUnlock()

	result := Analyze(r, content)
	s.docs.SetResult(uri, content, result)
	return result
}

// getResult returns the cached analysis for uri, analyzing on demand.
func (s *Server) getResult(uri string) *AnalysisResult {
	if result := s.docs.Result(uri); result != nil {
		return result
	}
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil
	}
	return s.analyze(uri, content)
}

func (s *Server) isPalette(uri string) bool {
	if s.palettePath == "" {
		return false
	}
	path, ok := uriToPath(uri)
	return ok && filepath.Clean(path) == s.palettePath
}

func uriToPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	if ctx == nil {
		return
	}
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}
