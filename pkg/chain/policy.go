package chain

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// MarkupPolicy returns the shared policy used for template output: user
// generated content rules plus the class and id attributes the default
// markup relies on.
func MarkupPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "id").Globally()
		policy.AllowElements("figure", "figcaption", "section", "aside")
		policy.AllowAttrs("start", "reversed").OnElements("ol")
		markupPolicy = policy
	})
	return markupPolicy
}
