package ska

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/roastland/HnV-software-knowledge-analysis/llm"
)

// ProjectConfig identifies the analyzed project and its graph export.
type ProjectConfig struct {
	Name string
	Desc string
	// InputFile is the JSON graph exported by the analysis tool.
	InputFile string
	// OutputFile receives the annotated graph. Defaults to the input
	// path with an _annotated suffix.
	OutputFile string
}

// OpenAIConfig holds the [openai] section of the config file. Empty fields
// are simply not passed to the client, mirroring how the section keys are
// all optional.
type OpenAIConfig struct {
	APIKey  string
	APIBase string
	Model   string
}

// CacheConfig holds the optional [cache] section. An empty Path disables
// the description cache entirely.
type CacheConfig struct {
	Path         string
	EmbeddingDim int
}

// Config is the full pipeline configuration, read from an INI file.
type Config struct {
	Project ProjectConfig
	OpenAI  OpenAIConfig
	Cache   CacheConfig
	// ReportFile, when set, receives an XLSX hierarchy/ontology report.
	ReportFile string
}

// defaultEmbeddingDim matches llm.DefaultEmbedModel.
const defaultEmbeddingDim = 1536

// LoadConfig reads an INI configuration file. The [project] keys name,
// desc, and ifile are required; everything else is optional.
func LoadConfig(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("ska: loading config %s: %w", path, err)
	}

	var cfg Config
	project := f.Section("project")
	cfg.Project.Name = project.Key("name").String()
	cfg.Project.Desc = project.Key("desc").String()
	cfg.Project.InputFile = project.Key("ifile").String()
	cfg.Project.OutputFile = project.Key("ofile").String()

	for key, val := range map[string]string{
		"name":  cfg.Project.Name,
		"desc":  cfg.Project.Desc,
		"ifile": cfg.Project.InputFile,
	} {
		if val == "" {
			return nil, fmt.Errorf("%w: [project] %s missing", ErrInvalidConfig, key)
		}
	}
	if cfg.Project.OutputFile == "" {
		cfg.Project.OutputFile = annotatedPath(cfg.Project.InputFile)
	}

	openAI := f.Section("openai")
	cfg.OpenAI.APIKey = openAI.Key("apikey").String()
	cfg.OpenAI.APIBase = openAI.Key("apibase").String()
	cfg.OpenAI.Model = openAI.Key("model").String()
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = llm.DefaultChatModel
	}

	cache := f.Section("cache")
	cfg.Cache.Path = cache.Key("path").String()
	cfg.Cache.EmbeddingDim = cache.Key("dim").MustInt(defaultEmbeddingDim)

	cfg.ReportFile = f.Section("report").Key("path").String()

	return &cfg, nil
}

// LLM assembles the provider config the way the original client arguments
// were built: only keys present in the file are set.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		APIKey:  c.OpenAI.APIKey,
		BaseURL: c.OpenAI.APIBase,
		Model:   c.OpenAI.Model,
	}
}

// annotatedPath derives the default output path from the input path.
func annotatedPath(input string) string {
	if stem, ok := strings.CutSuffix(input, ".json"); ok {
		return stem + "_annotated.json"
	}
	return input + "_annotated.json"
}
