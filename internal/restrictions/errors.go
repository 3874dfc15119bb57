package restrictions

import "errors"

var (
	ErrRuleInvalid = errors.New("restrictions: rule requires language, table and field")
	ErrRuleExists  = errors.New("restrictions: rule already exists")
)
