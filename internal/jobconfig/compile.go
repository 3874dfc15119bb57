package jobconfig

import (
	"slices"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// Compile validates the configuration and resolves it for languageID.
// Every failure is a *ConfigurationError.
func (c *Configuration) Compile(languageID int) (*Compiled, error) {
	if c == nil {
		return nil, &ConfigurationError{Err: ErrKeyRequired}
	}
	if err := c.Validate(); err != nil {
		return nil, asConfigurationError(c.Key, err)
	}

	exclude, err := domain.ParseRecordRefList(c.Exclude)
	if err != nil {
		return nil, &ConfigurationError{Key: c.Key, Field: "exclude", Err: err}
	}
	include, err := domain.ParseRecordRefList(c.Include)
	if err != nil {
		return nil, &ConfigurationError{Key: c.Key, Field: "include", Err: err}
	}
	constraint, err := domain.ParseRecordRefList(c.TableUIDConstraint)
	if err != nil {
		return nil, &ConfigurationError{Key: c.Key, Field: "table_uid_constraint", Err: err}
	}
	diff, err := c.DiffFor(languageID)
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0)
	for _, table := range domain.SplitList(c.TableList) {
		if !slices.Contains(tables, table) {
			tables = append(tables, table)
		}
	}

	return &Compiled{
		Key:                           c.Key,
		Tables:                        tables,
		Exclude:                       exclude,
		Include:                       include,
		UIDConstraint:                 constraint,
		IncludeFCEWithDefaultLanguage: c.IncludeFCEWithDefaultLanguage,
		SortExports:                   c.SortExports,
		Diff:                          diff,
	}, nil
}
