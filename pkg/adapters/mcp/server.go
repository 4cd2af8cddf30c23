package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/internal/presentation/graph"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/runner"
	"github.com/aretw0/storyline/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	GraphURI = "storyline://graph"
	StoryURI = "storyline://story"
)

// StateResponse is the structured result of every story tool.
type StateResponse struct {
	SessionID     string            `json:"session_id" jsonschema_description:"The session to pass to subsequent calls"`
	NodeID        string            `json:"node_id" jsonschema_description:"The current node"`
	Text          string            `json:"text" jsonschema_description:"The narrative text of the current node"`
	Choices       []ChoiceInfo      `json:"choices" jsonschema_description:"Choices offered by the current node"`
	ActiveEnding  domain.EndingKind `json:"active_ending,omitempty" jsonschema_description:"The ending the story is heading towards"`
	EndingReached bool              `json:"ending_reached" jsonschema_description:"Indicates if the story has ended"`
	EndingTitle   string            `json:"ending_title,omitempty" jsonschema_description:"Title of the reached ending"`
	History       []string          `json:"history" jsonschema_description:"Nodes visited since the last restart"`
}

// ChoiceInfo is a choice the caller can pass to the choose tool.
type ChoiceInfo struct {
	ID   string `json:"id" jsonschema_description:"Choice ID for the choose tool"`
	Text string `json:"text" jsonschema_description:"Choice label"`
}

// Server exposes story sessions as MCP tools and resources.
type Server struct {
	sessions    *session.Manager
	mcpServer   *server.MCPServer
	logger      *slog.Logger
	endingTitle func(domain.EndingKind) string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEndingTitle configures how ending kinds are named in tool results.
func WithEndingTitle(title func(domain.EndingKind) string) Option {
	return func(s *Server) {
		s.endingTitle = title
	}
}

// NewServer creates an MCP server named "storyline-mcp" at the given version.
func NewServer(sessions *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("storyline-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input ends.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over HTTP+SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_story",
		mcp.WithDescription("Start a playthrough at the beginning of the story. Starting an existing session returns it unchanged."),
		mcp.WithString("session_id", mcp.Description("Session ID to use (optional, generated when omitted)")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStart))

	chooseTool := mcp.NewTool("choose",
		mcp.WithDescription("Select one of the choices offered by the current node."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by start_story")),
		mcp.WithString("choice_id", mcp.Required(), mcp.Description("ID of one of the current choices")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(chooseTool, mcp.NewStructuredToolHandler(s.handleChoose))

	restartTool := mcp.NewTool("restart_story",
		mcp.WithDescription("Return the playthrough to the beginning, clearing the ending."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by start_story")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(restartTool, mcp.NewStructuredToolHandler(s.handleRestart))

	stateTool := mcp.NewTool("get_state",
		mcp.WithDescription("Read the current node, choices and ending of a playthrough."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by start_story")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleGetState))
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["session_id"].(string)

	id, state, err := s.sessions.Start(ctx, id)
	if err != nil {
		return StateResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return s.response(id, state), nil
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, err := requiredString(args, "session_id")
	if err != nil {
		return StateResponse{}, err
	}
	choiceID, err := requiredString(args, "choice_id")
	if err != nil {
		return StateResponse{}, err
	}

	clean, err := runner.SanitizeInput(choiceID)
	if err != nil {
		s.logger.Warn("MCP choose: input rejected", "err", err, "size", len(choiceID))
		return StateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	state, err := s.sessions.Choose(ctx, id, clean)
	if err != nil {
		return StateResponse{}, fmt.Errorf("choose failed: %w", err)
	}
	return s.response(id, state), nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, err := requiredString(args, "session_id")
	if err != nil {
		return StateResponse{}, err
	}

	state, err := s.sessions.Restart(ctx, id)
	if err != nil {
		return StateResponse{}, fmt.Errorf("restart failed: %w", err)
	}
	return s.response(id, state), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, err := requiredString(args, "session_id")
	if err != nil {
		return StateResponse{}, err
	}

	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return StateResponse{}, fmt.Errorf("get state failed: %w", err)
	}
	return s.response(id, state), nil
}

var errMissingArgument = errors.New("missing required argument")

func requiredString(args map[string]interface{}, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%w: %s", errMissingArgument, key)
	}
	return v, nil
}

func (s *Server) response(sessionID string, state domain.State) StateResponse {
	node, _ := s.sessions.Graph().Node(state.CurrentNodeID)

	resp := StateResponse{
		SessionID:     sessionID,
		NodeID:        node.ID,
		Text:          node.Text,
		Choices:       make([]ChoiceInfo, 0, len(node.Choices)),
		ActiveEnding:  state.ActiveEnding,
		EndingReached: state.EndingReached,
		History:       state.History,
	}
	for _, c := range node.Choices {
		resp.Choices = append(resp.Choices, ChoiceInfo{ID: c.ID, Text: c.Text})
	}
	if resp.EndingReached {
		resp.EndingTitle = resp.ActiveEnding.String()
		if s.endingTitle != nil {
			resp.EndingTitle = s.endingTitle(resp.ActiveEnding)
		}
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Story Graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), s.readGraph)

	s.mcpServer.AddResource(mcp.NewResource(StoryURI, "Story Definition",
		mcp.WithMIMEType("application/json"),
	), s.readStory)
}

func (s *Server) readGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "text/plain",
			Text:     graph.GenerateMermaid(s.sessions.Graph(), nil),
		},
	}, nil
}

func (s *Server) readStory(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.sessions.Graph().Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to encode story: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StoryURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
