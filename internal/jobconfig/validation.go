package jobconfig

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// Validate checks every configuration field without resolving it for a
// language.
func (c Configuration) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Key,
			validation.Required.ErrorObject(validation.NewError("l10n.configuration.key_required", "key is required")),
			validation.By(validKey),
		),
		validation.Field(&c.TableList,
			validation.Required.ErrorObject(validation.NewError("l10n.configuration.tablelist_required", "at least one table is required")),
			validation.By(validTableList),
		),
		validation.Field(&c.Exclude, validation.By(validRefList)),
		validation.Field(&c.Include, validation.By(validRefList)),
		validation.Field(&c.TableUIDConstraint, validation.By(validRefList)),
		validation.Field(&c.DiffPayload, validation.By(validDiffPayload)),
	)
}

func validKey(value any) error {
	key, _ := value.(string)
	if key == "" {
		return nil
	}
	if !slug.IsValid(key) {
		return validation.NewError("l10n.configuration.key_invalid", "key must be a slug")
	}
	return nil
}

func validTableList(value any) error {
	raw, _ := value.(string)
	tables := domain.SplitList(raw)
	if len(tables) == 0 {
		return validation.NewError("l10n.configuration.tablelist_required", "at least one table is required")
	}
	for _, table := range tables {
		if !domain.ValidTableName(table) {
			return validation.NewError("l10n.configuration.table_invalid", fmt.Sprintf("invalid table name %q", table))
		}
	}
	return nil
}

func validRefList(value any) error {
	raw, _ := value.(string)
	if _, err := domain.ParseRecordRefList(raw); err != nil {
		return validation.NewError("l10n.configuration.ref_invalid", err.Error())
	}
	return nil
}

func validDiffPayload(value any) error {
	raw, _ := value.(string)
	if _, err := decodeDiffPayload(raw); err != nil {
		return validation.NewError("l10n.configuration.diff_invalid", err.Error())
	}
	return nil
}

// asConfigurationError turns a validation failure into a ConfigurationError
// naming the first failing field.
func asConfigurationError(key string, err error) error {
	if err == nil {
		return nil
	}
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return err
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return &ConfigurationError{Key: key, Field: fields[0], Err: fieldErrs[fields[0]]}
	}
	return &ConfigurationError{Key: key, Err: err}
}
