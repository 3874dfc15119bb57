package jobconfig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/identity"
)

// documentHeader is the YAML front matter of a configuration document.
// Reference lists accept either a YAML sequence or a comma separated string.
type documentHeader struct {
	Key                           string   `yaml:"key"`
	Title                         string   `yaml:"title"`
	Tables                        listYAML `yaml:"tables"`
	Exclude                       listYAML `yaml:"exclude"`
	Include                       listYAML `yaml:"include"`
	UIDConstraint                 listYAML `yaml:"table_uid_constraint"`
	IncludeFCEWithDefaultLanguage bool     `yaml:"include_fce_with_default_language"`
	SortExports                   bool     `yaml:"sort_exports"`
	Diff                          string   `yaml:"diff"`
}

type listYAML []string

func (l *listYAML) UnmarshalYAML(unmarshal func(any) error) error {
	var items []string
	if err := unmarshal(&items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*l = domain.SplitList(single)
	return nil
}

var descriptionRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ParseDocument reads a Markdown configuration document. The front matter
// carries the job settings and the body becomes the description.
func ParseDocument(source []byte) (*Configuration, error) {
	var header documentHeader
	body, err := frontmatter.Parse(bytes.NewReader(source), &header)
	if err != nil {
		return nil, fmt.Errorf("parse configuration document: %w", err)
	}

	key := strings.TrimSpace(header.Key)
	if key == "" {
		key = header.Title
	}
	normalized, err := slug.Normalize(key)
	if err != nil || normalized == "" {
		return nil, &ConfigurationError{Key: header.Key, Field: "key", Err: ErrKeyRequired}
	}

	description := strings.TrimSpace(string(body))
	cfg := &Configuration{
		ID:                            identity.ConfigurationUUID(normalized),
		Key:                           normalized,
		Title:                         strings.TrimSpace(header.Title),
		Description:                   description,
		TableList:                     joinList(header.Tables),
		Exclude:                       joinList(header.Exclude),
		Include:                       joinList(header.Include),
		TableUIDConstraint:            joinList(header.UIDConstraint),
		IncludeFCEWithDefaultLanguage: header.IncludeFCEWithDefaultLanguage,
		SortExports:                   header.SortExports,
		DiffPayload:                   strings.TrimSpace(header.Diff),
	}
	if description != "" {
		var buf bytes.Buffer
		if err := descriptionRenderer.Convert([]byte(description), &buf); err != nil {
			return nil, fmt.Errorf("render configuration description: %w", err)
		}
		cfg.DescriptionHTML = buf.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, asConfigurationError(cfg.Key, err)
	}
	return cfg, nil
}

func joinList(values []string) string {
	var parts []string
	for _, value := range values {
		parts = append(parts, domain.SplitList(value)...)
	}
	return strings.Join(parts, ",")
}
