package shiftrule

import "errors"

var (
	ErrRuleGroupNotFound = errors.New("shift rule group not found")
)
