// Package ska drives automated source-code summarization over a software
// knowledge graph. It loads the graph exported by a code-analysis tool,
// derives the package → class → method hierarchy, generates descriptions
// bottom-up with an LLM, and writes the annotated graph back out.
package ska

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roastland/HnV-software-knowledge-analysis/graph"
	"github.com/roastland/HnV-software-knowledge-analysis/hierarchy"
	"github.com/roastland/HnV-software-knowledge-analysis/llm"
	"github.com/roastland/HnV-software-knowledge-analysis/report"
	"github.com/roastland/HnV-software-knowledge-analysis/store"
)

const methodPrompt = `You are documenting the %s project. %s
Summarize the following Java method in one sentence of technical
documentation. Describe what the method does, not how it is implemented.
Respond with the sentence only.

METHOD %s SOURCE:
%s`

const classPrompt = `You are documenting the %s project. %s
Summarize the following Java class in one or two sentences of technical
documentation, based on the descriptions of its methods.
Respond with the summary only.

CLASS %s METHODS:
%s`

const packagePrompt = `You are documenting the %s project. %s
Summarize the following Java package in one or two sentences of technical
documentation, based on the descriptions of its classes.
Respond with the summary only.

PACKAGE %s CLASSES:
%s`

// Node kinds recorded in the description cache.
const (
	KindPackage = "package"
	KindClass   = "class"
	KindMethod  = "method"
)

// embedBatchSize caps how many fresh descriptions are embedded per request.
const embedBatchSize = 64

// Result reports what a pipeline run processed.
type Result struct {
	Packages  int
	Classes   int
	Methods   int
	CacheHits int
	Generated int
}

// Pipeline wires the graph, hierarchy, LLM, and cache into one run.
type Pipeline struct {
	cfg       *Config
	chat      llm.Provider
	cache     *store.Store
	ownsCache bool

	pendingIDs   []string
	pendingTexts []string
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithProvider injects an LLM provider, replacing the one built from config.
func WithProvider(p llm.Provider) Option {
	return func(pl *Pipeline) { pl.chat = p }
}

// WithStore injects an already-open description cache. The pipeline will
// not close it.
func WithStore(s *store.Store) Option {
	return func(pl *Pipeline) { pl.cache = s }
}

// New builds a Pipeline from config. The description cache is opened only
// when [cache] path is configured.
func New(cfg *Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.chat == nil {
		p.chat = llm.NewOpenAI(cfg.LLM())
	}
	if p.cache == nil && cfg.Cache.Path != "" {
		s, err := store.New(cfg.Cache.Path, cfg.Cache.EmbeddingDim)
		if err != nil {
			return nil, fmt.Errorf("ska: opening description cache: %w", err)
		}
		p.cache = s
		p.ownsCache = true
	}
	return p, nil
}

// Close releases resources the pipeline opened itself.
func (p *Pipeline) Close() error {
	if p.ownsCache && p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

// Run executes the full pipeline: load, transform, summarize, save, and
// optionally write the XLSX report.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	g, err := graph.Load(p.cfg.Project.InputFile)
	if err != nil {
		return nil, err
	}
	nodes, edges, err := graph.Transform(g)
	if err != nil {
		return nil, err
	}
	slog.Info("ska: graph loaded",
		"nodes", len(nodes), "relations", len(edges), "project", p.cfg.Project.Name)

	h, err := hierarchy.Build(nodes, edges)
	if err != nil {
		return nil, err
	}

	res, err := p.Summarize(ctx, h, nodes)
	if err != nil {
		return nil, err
	}

	if err := graph.Save(p.cfg.Project.OutputFile, g); err != nil {
		return nil, err
	}
	slog.Info("ska: annotated graph written", "path", p.cfg.Project.OutputFile)

	if p.cfg.ReportFile != "" {
		ont, err := graph.Ontology(edges, nodes)
		if err != nil {
			return nil, err
		}
		if err := report.WriteWorkbook(p.cfg.ReportFile, h, nodes, ont); err != nil {
			return nil, err
		}
		slog.Info("ska: report written", "path", p.cfg.ReportFile)
	}

	return res, nil
}

// Summarize walks the hierarchy bottom-up, generating a description for
// every method, then every class from its methods, then every package from
// its classes. Descriptions land in the node properties and, when a cache
// is configured, in the description cache with their embeddings.
func (p *Pipeline) Summarize(ctx context.Context, h hierarchy.Hierarchy, nodes map[string]*graph.Node) (*Result, error) {
	var res Result
	for _, pkg := range h.Packages() {
		for _, cls := range h.Classes(pkg) {
			for _, met := range h.Methods(pkg, cls) {
				if err := p.describeMethod(ctx, nodes[met], &res); err != nil {
					return nil, err
				}
				res.Methods++
			}
			if err := p.describeClass(ctx, nodes[cls], h.Methods(pkg, cls), nodes, &res); err != nil {
				return nil, err
			}
			res.Classes++
		}
		if err := p.describePackage(ctx, nodes[pkg], h.Classes(pkg), nodes, &res); err != nil {
			return nil, err
		}
		res.Packages++
	}

	if err := p.embedPending(ctx); err != nil {
		return nil, err
	}
	slog.Info("ska: summarization done",
		"packages", res.Packages, "classes", res.Classes, "methods", res.Methods,
		"cache_hits", res.CacheHits, "generated", res.Generated)
	return &res, nil
}

func (p *Pipeline) describeMethod(ctx context.Context, n *graph.Node, res *Result) error {
	content := nodeName(n)
	if src, ok := n.Properties["sourceText"].(string); ok {
		content = StripJavaComments(src)
	}
	prompt := fmt.Sprintf(methodPrompt, p.cfg.Project.Name, p.cfg.Project.Desc, nodeName(n), content)
	return p.describe(ctx, n, KindMethod, content, prompt, res)
}

func (p *Pipeline) describeClass(ctx context.Context, n *graph.Node, methods []string, nodes map[string]*graph.Node, res *Result) error {
	content := memberContext(methods, nodes)
	prompt := fmt.Sprintf(classPrompt, p.cfg.Project.Name, p.cfg.Project.Desc, nodeName(n), content)
	return p.describe(ctx, n, KindClass, content, prompt, res)
}

func (p *Pipeline) describePackage(ctx context.Context, n *graph.Node, classes []string, nodes map[string]*graph.Node, res *Result) error {
	content := memberContext(classes, nodes)
	prompt := fmt.Sprintf(packagePrompt, p.cfg.Project.Name, p.cfg.Project.Desc, nodeName(n), content)
	return p.describe(ctx, n, KindPackage, content, prompt, res)
}

// describe fills in one node's description, consulting the cache first.
func (p *Pipeline) describe(ctx context.Context, n *graph.Node, kind, content, prompt string, res *Result) error {
	hash := contentHash(kind, p.cfg.OpenAI.Model, content)

	if p.cache != nil {
		desc, ok, err := p.cache.GetDescription(ctx, n.ID, hash)
		if err != nil {
			return err
		}
		if ok {
			n.Properties["description"] = desc
			res.CacheHits++
			return nil
		}
	}

	resp, err := p.chat.Chat(ctx, llm.ChatRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return fmt.Errorf("ska: describing %s %s: %w", kind, n.ID, err)
	}
	desc := Sentence(resp.Content)
	if desc == "" {
		return fmt.Errorf("%w: %s %s", ErrEmptySummary, kind, n.ID)
	}

	n.Properties["description"] = desc
	res.Generated++
	slog.Debug("ska: described", "kind", kind, "node", n.ID)

	if p.cache != nil {
		if err := p.cache.PutDescription(ctx, store.Description{
			NodeID:      n.ID,
			Kind:        kind,
			ContentHash: hash,
			Description: desc,
		}); err != nil {
			return err
		}
		p.pendingIDs = append(p.pendingIDs, n.ID)
		p.pendingTexts = append(p.pendingTexts, desc)
	}
	return nil
}

// embedPending embeds freshly generated descriptions in batches and stores
// them for similar-component lookups.
func (p *Pipeline) embedPending(ctx context.Context) error {
	if p.cache == nil || len(p.pendingIDs) == 0 {
		return nil
	}
	for start := 0; start < len(p.pendingIDs); start += embedBatchSize {
		end := min(start+embedBatchSize, len(p.pendingIDs))
		vectors, err := p.chat.Embed(ctx, p.pendingTexts[start:end])
		if err != nil {
			return fmt.Errorf("ska: embedding descriptions: %w", err)
		}
		for i, vec := range vectors {
			if err := p.cache.PutEmbedding(ctx, p.pendingIDs[start+i], vec); err != nil {
				return err
			}
		}
	}
	slog.Info("ska: embeddings stored", "count", len(p.pendingIDs))
	p.pendingIDs, p.pendingTexts = nil, nil
	return nil
}

// SimilarComponents embeds a free-text query and returns the k cached
// components whose descriptions are nearest to it. Requires a configured
// description cache.
func (p *Pipeline) SimilarComponents(ctx context.Context, query string, k int) ([]store.SimilarNode, error) {
	if p.cache == nil {
		return nil, fmt.Errorf("%w: similar-component lookup needs a [cache] path", ErrInvalidConfig)
	}
	vectors, err := p.chat.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("ska: embedding query: %w", err)
	}
	return p.cache.SimilarNodes(ctx, vectors[0], k)
}

// memberContext renders the members' names and descriptions as a bullet
// list for the enclosing node's prompt.
func memberContext(ids []string, nodes map[string]*graph.Node) string {
	var b strings.Builder
	for _, id := range ids {
		n := nodes[id]
		line := hierarchy.Describe(n)
		if line == "" {
			line = "no description available"
		}
		fmt.Fprintf(&b, "- %s: %s\n", nodeName(n), Lower1(line))
	}
	return b.String()
}

// nodeName prefers the analysis tool's simpleName property over the raw id.
func nodeName(n *graph.Node) string {
	if name, ok := n.Properties["simpleName"].(string); ok && name != "" {
		return name
	}
	return n.ID
}

// contentHash keys the description cache: regeneration happens when the
// source material or the model changes.
func contentHash(kind, model, content string) string {
	sum := sha256.Sum256([]byte(kind + "\x00" + model + "\x00" + content))
	return hex.EncodeToString(sum[:])
}

// Setup loads the configuration, reads the graph it points at, and
// transforms it into the working structures, mirroring how a run begins.
func Setup(configPath string) (*Config, *graph.RawGraph, map[string]*graph.Node, map[string][]*graph.Edge, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g, err := graph.Load(cfg.Project.InputFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nodes, edges, err := graph.Transform(g)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, g, nodes, edges, nil
}
