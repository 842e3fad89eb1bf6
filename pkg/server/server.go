package server

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/symserve/internal/logger"
	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/provider"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Version is reported by the info action.
var Version = "dev"

// keyworder is implemented by providers that offer name-word completion.
type keyworder interface {
	Keywords(prefix string, limit int) []string
}

// inputReader remembers the last read failure so that broken input can be
// told apart from undecodable bytes.
type inputReader struct {
	r   io.Reader
	err error
}

func (in *inputReader) Read(p []byte) (int, error) {
	n, err := in.r.Read(p)
	if err != nil && err != io.EOF {
		in.err = err
	}
	return n, err
}

// Server handles the IPC for one provider
type Server struct {
	mu         sync.RWMutex
	provider   provider.Provider
	config     *config.Config
	configPath string
	input      *inputReader
	decoder    *msgpack.Decoder
	writer     *bufio.Writer
	encoder    *msgpack.Encoder
	log        *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(p provider.Provider, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(p, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams. An empty
// configPath keeps config changes in memory.
func NewServerWithIO(p provider.Provider, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	input := &inputReader{r: r}
	return &Server{
		provider:   p,
		config:     cfg,
		configPath: configPath,
		input:      input,
		decoder:    msgpack.NewDecoder(bufio.NewReader(input)),
		writer:     bw,
		encoder:    msgpack.NewEncoder(bw),
		log:        logger.New("server"),
	}
}

// Start signals readiness and serves requests until the input ends.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := s.decoder.DecodeRaw()
		switch {
		case err == nil:
			s.handleRequest(raw)
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			s.sendError("", "truncated msgpack request", 400)
			return nil
		case s.input.err != nil:
			s.log.Errorf("Reading request: %v", err)
			return errors.Wrap(s.input.err, "read request")
		default:
			// The offending bytes are consumed, so decoding resumes after them.
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack stream", 400)
		}
	}
}

// SetProvider swaps the provider between requests, e.g. after the catalog
// file was reloaded.
func (s *Server) SetProvider(p provider.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

// handleRequest decodes one complete msgpack value and dispatches it. A value
// that is not a Request is answered with an error and the loop continues.
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid msgpack request", 400)
		return
	}

	if req.Action == ActionConfig {
		s.handleConfig(req)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	switch req.Action {
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionInfo:
		s.handleInfo(req)
	case ActionGroups:
		s.sendResponse(GroupsResponse{ID: req.ID, Groups: s.provider.GroupNames()})
	case ActionSymbols:
		s.handleSymbols(req)
	case ActionFilter:
		s.handleFilter(req)
	case ActionKeywords:
		s.handleKeywords(req)
	case ActionInsert:
		s.handleInsert(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 404)
	}
}

func (s *Server) handleInfo(req Request) {
	kind := s.config.Provider.Kind
	if _, ok := s.provider.(*provider.Emoji); ok {
		kind = provider.KindEmoji
	} else if _, ok := s.provider.(*provider.Unicode); ok {
		kind = provider.KindUnicode
	}
	groups := s.provider.GroupNames()
	s.sendResponse(InfoResponse{
		ID:           req.ID,
		Version:      Version,
		Provider:     kind,
		Hint:         s.provider.PlaceholderHint(),
		Style:        s.provider.PreviewStyle(),
		GroupCount:   max(len(groups)-1, 0),
		SymbolCount:  len(s.provider.Symbols(catalog.AllGroupName)),
		MaxResults:   s.config.Server.MaxResults,
		MaxFilterLen: s.config.Server.MaxFilterLen,
	})
}

func (s *Server) handleSymbols(req Request) {
	start := time.Now()
	symbols := s.provider.Symbols(req.Group)
	s.sendSymbols(req, symbols, time.Since(start))
}

func (s *Server) handleFilter(req Request) {
	if n := utf8.RuneCountInString(req.Filter); n > s.config.Server.MaxFilterLen {
		s.sendError(req.ID, fmt.Sprintf("filter exceeds maximum length of %d characters", s.config.Server.MaxFilterLen), 400)
		s.log.Debug("Filter too long", "len", n)
		return
	}
	start := time.Now()
	symbols := s.provider.Filter(req.Filter, s.provider.Symbols(req.Group))
	s.sendSymbols(req, symbols, time.Since(start))
}

func (s *Server) sendSymbols(req Request, symbols []catalog.Symbol, elapsed time.Duration) {
	limit := utils.ClampLimit(req.Limit, s.config.Server.MaxResults, s.config.Server.MaxResults)
	truncated := len(symbols) > limit
	if truncated {
		symbols = symbols[:limit]
	}
	ranks := utils.CreateRankList(len(symbols))
	out := make([]RankedSymbol, len(symbols))
	for i, sym := range symbols {
		out[i] = RankedSymbol{
			Name:      sym.Name,
			Value:     sym.Value,
			Codepoint: sym.Codepoint,
			Rank:      ranks[i],
		}
	}
	s.log.Debugf("Took [ %v ] for %s %q", elapsed, req.Action, req.Filter)
	s.sendResponse(SymbolsResponse{
		ID:        req.ID,
		Symbols:   out,
		Count:     len(out),
		Truncated: truncated,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleKeywords(req Request) {
	k, ok := s.provider.(keyworder)
	if !ok {
		s.sendError(req.ID, "provider does not support keywords", 400)
		return
	}
	limit := utils.ClampLimit(req.Limit, s.config.CLI.DefaultLimit, s.config.Server.MaxResults)
	words := k.Keywords(req.Prefix, limit)
	s.sendResponse(KeywordsResponse{ID: req.ID, Keywords: words, Count: len(words)})
}

func (s *Server) handleInsert(req Request) {
	if req.Symbol == nil {
		s.sendError(req.ID, "missing 'sym' parameter", 400)
		return
	}
	text := req.Text
	if req.Tokens != nil {
		var err error
		if text, err = document.ReadText(req.Tokens, req.RawTeX); err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
	}

	state := document.NewState(text, req.Selection)
	tr := s.provider.InsertTransaction(*req.Symbol, req.SearchTerm, state)
	after := tr.State()

	resp := InsertResponse{
		ID:        req.ID,
		Selection: after.Selection,
		Steps:     tr.Steps(),
	}
	if req.Tokens != nil {
		resp.Tokens = document.WriteTokens(after.Text)
	} else {
		resp.Text = after.Text
	}
	s.sendResponse(resp)
}

// handleConfig takes the write lock since it changes the limits read by
// every other action.
func (s *Server) handleConfig(req Request) {
	if req.MaxResults != nil && (*req.MaxResults < 1 || *req.MaxResults > config.MaxResultsLimit) {
		s.sendError(req.ID, fmt.Sprintf("max_results must be in [1, %d]", config.MaxResultsLimit), 400)
		return
	}
	if req.MaxFilterLen != nil && *req.MaxFilterLen < 1 {
		s.sendError(req.ID, "max_filter_len must be positive", 400)
		return
	}

	s.mu.Lock()
	var err error
	if s.configPath == "" {
		if req.MaxResults != nil {
			s.config.Server.MaxResults = *req.MaxResults
		}
		if req.MaxFilterLen != nil {
			s.config.Server.MaxFilterLen = *req.MaxFilterLen
		}
	} else {
		err = s.config.Update(s.configPath, req.MaxResults, req.MaxFilterLen)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Errorf("Saving config: %v", err)
		s.sendError(req.ID, "failed to save config", 500)
		return
	}
	s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
}

// sendResponse encodes one response and flushes it to the host.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
