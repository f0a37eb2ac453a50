package reporters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported reporter types.
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// configFile represents the structure of the reporters configuration file.
type configFile struct {
	Reporters []ReporterConfig `json:"reporters" yaml:"reporters"`
}

// ReporterConfig represents a single reporter entry declared in config files.
type ReporterConfig struct {
	ID      string              `json:"id" yaml:"id"`
	Type    string              `json:"type" yaml:"type"`
	Enabled *bool               `json:"enabled" yaml:"enabled"`
	HTTP    *HTTPReporterConfig `json:"http" yaml:"http"`
	SQS     *SQSReporterConfig  `json:"sqs" yaml:"sqs"`
	SNS     *SNSReporterConfig  `json:"sns" yaml:"sns"`
	PubSub  *PubSubConfig       `json:"pubsub" yaml:"pubsub"`
}

// HTTPReporterConfig holds generic webhook settings.
type HTTPReporterConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSConfig holds the region and optional static credentials shared by SQS and SNS.
// Without static keys the default AWS credential chain is used.
type AWSConfig struct {
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// SQSReporterConfig holds AWS SQS specific settings.
type SQSReporterConfig struct {
	QueueURL  string `json:"uri" yaml:"uri"`
	AWSConfig `json:",inline" yaml:",inline"`
}

// SNSReporterConfig holds AWS SNS specific settings.
type SNSReporterConfig struct {
	TopicARN  string `json:"topic_arn" yaml:"topic_arn"`
	AWSConfig `json:",inline" yaml:",inline"`
}

// PubSubConfig holds Google Cloud Pub/Sub settings.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// LoadConfigs reads reporter definitions from a YAML/JSON file and returns the enabled ones.
func LoadConfigs(path string) ([]ReporterConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("reporters file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reporters file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read reporters file: %w", err)
	}

	parsed, err := parseConfigFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(parsed.Reporters))
	out := make([]ReporterConfig, 0, len(parsed.Reporters))
	for i := range parsed.Reporters {
		cfg := sanitizeConfig(parsed.Reporters[i])
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("reporters[%d]: %w", i, err)
		}
		if _, exists := seen[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate reporter id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out, nil
}

// parseConfigFile decodes by extension; an unknown extension tries YAML then JSON.
func parseConfigFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		exts []string
		fn   func([]byte, any) error
	}{
		{name: "yaml", exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
		{name: "json", exts: []string{".json"}, fn: json.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		for _, e := range d.exts {
			known = known || e == ext
		}
	}

	var lastErr error
	for _, d := range decoders {
		if known && !hasExt(d.exts, ext) {
			continue
		}
		var cf configFile
		if err := d.fn(data, &cf); err != nil {
			lastErr = fmt.Errorf("decode %s reporters: %w", d.name, err)
			continue
		}
		return cf, nil
	}
	if lastErr == nil {
		lastErr = errors.New("reporters file format not recognized (expected YAML or JSON)")
	}
	return configFile{}, lastErr
}

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

func sanitizeConfig(cfg ReporterConfig) ReporterConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.HTTP != nil {
		c := *cfg.HTTP
		c.URL = strings.TrimSpace(c.URL)
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		if c.Method == "" {
			c.Method = httpDefaultMethod
		}
		c.Headers = sanitizeHeaders(c.Headers)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &c
	}
	if cfg.SQS != nil {
		c := *cfg.SQS
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		c.AWSConfig = sanitizeAWS(c.AWSConfig)
		cfg.SQS = &c
	}
	if cfg.SNS != nil {
		c := *cfg.SNS
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		c.AWSConfig = sanitizeAWS(c.AWSConfig)
		cfg.SNS = &c
	}
	if cfg.PubSub != nil {
		c := *cfg.PubSub
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		cfg.PubSub = &c
	}
	return cfg
}

func sanitizeAWS(c AWSConfig) AWSConfig {
	c.Region = strings.TrimSpace(c.Region)
	c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
	c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)
	return c
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validateConfig(cfg ReporterConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for reporter %q", cfg.ID)
	case TypeHTTP:
		if cfg.HTTP == nil || cfg.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for reporter %q", cfg.ID)
		}
	case TypeSQS:
		if cfg.SQS == nil || cfg.SQS.QueueURL == "" {
			return fmt.Errorf("sqs.uri is required for reporter %q", cfg.ID)
		}
		return validateAWS(cfg.ID, "sqs", cfg.SQS.AWSConfig)
	case TypeSNS:
		if cfg.SNS == nil || cfg.SNS.TopicARN == "" {
			return fmt.Errorf("sns.topic_arn is required for reporter %q", cfg.ID)
		}
		return validateAWS(cfg.ID, "sns", cfg.SNS.AWSConfig)
	case TypePubSub:
		if cfg.PubSub == nil || cfg.PubSub.ProjectID == "" || cfg.PubSub.Topic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.topic are required for reporter %q", cfg.ID)
		}
	default:
		return fmt.Errorf("unsupported reporter type %q for reporter %q", cfg.Type, cfg.ID)
	}
	return nil
}

func validateAWS(id, block string, c AWSConfig) error {
	if c.Region == "" {
		return fmt.Errorf("%s.region is required for reporter %q", block, id)
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return fmt.Errorf("%s.access_key_id and %s.secret_access_key must be set together for reporter %q", block, block, id)
	}
	return nil
}

// EnabledValue returns enabled flag defaulting to true.
func (cfg ReporterConfig) EnabledValue() bool {
	if cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}
