package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/pkg/cfg"
	"github.com/ersincine/automata/pkg/selftest"
)

// Tool argument payloads, decoded from the request's argument map.
type deriveArgs struct {
	Input string   `mapstructure:"input"`
	Limit *float64 `mapstructure:"limit"`
}

type acceptsArgs struct {
	Kind  string `mapstructure:"kind"`
	Input string `mapstructure:"input"`
}

type selfTestArgs struct {
	Kind string `mapstructure:"kind"`
}

// Engine defines the interface required by the MCP server to answer queries.
type Engine interface {
	Kinds() []automata.Kind
	Fingerprint(kind automata.Kind) string
	Suite(kind automata.Kind) (selftest.Suite, bool)
	Derive(ctx context.Context, target string, opts ...cfg.DeriveOption) ([]string, error)
	Accepts(ctx context.Context, kind automata.Kind, input string) (bool, error)
	SelfTest(ctx context.Context, kind automata.Kind) (selftest.Report, error)
}

// DeriveResponse is the structured result of the derive tool.
type DeriveResponse struct {
	Member     bool     `json:"member" jsonschema_description:"Whether the input is in the grammar's language"`
	Derivation []string `json:"derivation" jsonschema_description:"Leftmost derivation from the start variable, empty when none was found"`
	Compressed []string `json:"compressed" jsonschema_description:"Derivation with rewrite loops removed"`
}

// AcceptsResponse is the structured result of the accepts tool.
type AcceptsResponse struct {
	Kind   string `json:"kind" jsonschema_description:"System family that answered"`
	Input  string `json:"input" jsonschema_description:"The queried string"`
	Member bool   `json:"member" jsonschema_description:"Whether the input is in the language"`
}

// SelfTestResponse is the structured result of the self_test tool.
type SelfTestResponse struct {
	Checked    int        `json:"checked" jsonschema_description:"Number of labeled inputs checked"`
	OK         bool       `json:"ok" jsonschema_description:"True when every verdict matched its label"`
	Mismatches []Mismatch `json:"mismatches" jsonschema_description:"Inputs whose verdict contradicted the label"`
}

// Mismatch is one self-test discrepancy.
type Mismatch struct {
	Input      string `json:"input"`
	WantMember bool   `json:"want_member"`
	GotMember  bool   `json:"got_member"`
}

// SystemInfo describes one loaded system in the systems resource.
type SystemInfo struct {
	Kind        string `json:"kind"`
	Fingerprint string `json:"fingerprint"`
	SuiteSize   int    `json:"suite_size"`
}

// Server wraps the workbench and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("automata-mcp", automata.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: derive
	deriveTool := mcp.NewTool("derive",
		mcp.WithDescription("Search for a leftmost derivation of a string in the loaded context-free grammar."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Target string of terminal symbols")),
		mcp.WithNumber("limit", mcp.Description("Override of the variable-occurrence bound")),
		mcp.WithOutputSchema[DeriveResponse](),
	)
	s.mcpServer.AddTool(deriveTool, mcp.NewStructuredToolHandler(s.handleDerive))

	// TOOL: accepts
	acceptsTool := mcp.NewTool("accepts",
		mcp.WithDescription("Answer whether a string is in a loaded system's language."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("System family: cfg, npda or tm")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The string to test")),
		mcp.WithOutputSchema[AcceptsResponse](),
	)
	s.mcpServer.AddTool(acceptsTool, mcp.NewStructuredToolHandler(s.handleAccepts))

	// TOOL: self_test
	selfTestTool := mcp.NewTool("self_test",
		mcp.WithDescription("Check a loaded system against its labeled examples."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("System family: cfg, npda or tm")),
		mcp.WithOutputSchema[SelfTestResponse](),
	)
	s.mcpServer.AddTool(selfTestTool, mcp.NewStructuredToolHandler(s.handleSelfTest))
}

// Handler methods for structured tools

func (s *Server) handleDerive(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DeriveResponse, error) {
	var params deriveArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return DeriveResponse{}, fmt.Errorf("failed to decode arguments: %w", err)
	}

	var opts []cfg.DeriveOption
	if params.Limit != nil {
		opts = append(opts, cfg.WithVariableLimit(int(*params.Limit)))
	}

	derivation, err := s.engine.Derive(ctx, params.Input, opts...)
	if err != nil {
		return DeriveResponse{}, fmt.Errorf("derive failed: %w", err)
	}

	return DeriveResponse{
		Member:     len(derivation) > 0,
		Derivation: derivation,
		Compressed: cfg.Compress(derivation),
	}, nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AcceptsResponse, error) {
	var params acceptsArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return AcceptsResponse{}, fmt.Errorf("failed to decode arguments: %w", err)
	}

	kind, err := automata.ParseKind(params.Kind)
	if err != nil {
		return AcceptsResponse{}, err
	}

	member, err := s.engine.Accepts(ctx, kind, params.Input)
	if err != nil {
		return AcceptsResponse{}, fmt.Errorf("accepts failed: %w", err)
	}

	return AcceptsResponse{
		Kind:   string(kind),
		Input:  params.Input,
		Member: member,
	}, nil
}

func (s *Server) handleSelfTest(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SelfTestResponse, error) {
	var params selfTestArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return SelfTestResponse{}, fmt.Errorf("failed to decode arguments: %w", err)
	}

	kind, err := automata.ParseKind(params.Kind)
	if err != nil {
		return SelfTestResponse{}, err
	}

	report, err := s.engine.SelfTest(ctx, kind)
	if err != nil {
		return SelfTestResponse{}, fmt.Errorf("self-test failed: %w", err)
	}

	resp := SelfTestResponse{
		Checked:    report.Checked,
		OK:         report.OK(),
		Mismatches: make([]Mismatch, len(report.Mismatches)),
	}
	for i, m := range report.Mismatches {
		resp.Mismatches[i] = Mismatch{
			Input:      m.Input,
			WantMember: m.WantMember,
			GotMember:  m.GotMember,
		}
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://systems
	s.mcpServer.AddResource(mcp.NewResource("automata://systems", "Loaded Systems",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		kinds := s.engine.Kinds()
		systems := make([]SystemInfo, 0, len(kinds))
		for _, kind := range kinds {
			info := SystemInfo{
				Kind:        string(kind),
				Fingerprint: s.engine.Fingerprint(kind),
			}
			if suite, ok := s.engine.Suite(kind); ok {
				info.SuiteSize = suite.Size()
			}
			systems = append(systems, info)
		}
		jsonBytes, _ := json.Marshal(systems)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://systems",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
